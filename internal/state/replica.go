// Package state реализует локальную реплику контент-графа:
// типизированные коллекции сущностей, логические часы, статус
// синхронизации, API мутаций и детерминированный merge.
//
// Реплика — единственный владелец своих коллекций. Весь доступ идет через
// методы Replica под RWMutex; сетевой ввод-вывод и персистентность
// находятся вне ядра (см. internal/client/api и internal/client/storage).
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/iudanet/sitekeeper/internal/models"
)

// Snapshot — сериализуемая форма реплики без блокировок.
// Именно Snapshot ходит по проводу и ложится в хранилище.
type Snapshot struct {
	Events     map[string]models.Event   `json:"events"`
	Tracks     map[string]models.Track   `json:"tracks"`
	Images     map[string]models.Image   `json:"images"`
	Videos     map[string]models.Video   `json:"videos"`
	Articles   map[string]models.Article `json:"articles"`
	Sites      map[string]models.Site    `json:"sites"`
	Users      map[string]models.User    `json:"users"`
	SyncStatus models.SyncStatus         `json:"sync_status"`
	LastSync   *int64                    `json:"last_sync"`
	Clock      uint64                    `json:"clock"`
}

// NewSnapshot создает пустой snapshot в состоянии synced с нулевыми часами.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Events:     make(map[string]models.Event),
		Tracks:     make(map[string]models.Track),
		Images:     make(map[string]models.Image),
		Videos:     make(map[string]models.Video),
		Articles:   make(map[string]models.Article),
		Sites:      make(map[string]models.Site),
		Users:      make(map[string]models.User),
		SyncStatus: models.StatusSynced(),
	}
}

// Clone возвращает глубокую копию snapshot.
func (s *Snapshot) Clone() *Snapshot {
	out := NewSnapshot()
	for id, e := range s.Events {
		out.Events[id] = e.Clone()
	}
	for id, t := range s.Tracks {
		out.Tracks[id] = t.Clone()
	}
	for id, img := range s.Images {
		out.Images[id] = img.Clone()
	}
	for id, v := range s.Videos {
		out.Videos[id] = v.Clone()
	}
	for id, a := range s.Articles {
		out.Articles[id] = a.Clone()
	}
	for id, site := range s.Sites {
		out.Sites[id] = site.Clone()
	}
	for id, u := range s.Users {
		out.Users[id] = u.Clone()
	}
	out.SyncStatus = s.SyncStatus
	out.Clock = s.Clock
	if s.LastSync != nil {
		v := *s.LastSync
		out.LastSync = &v
	}
	return out
}

// ensureMaps инициализирует отсутствующие коллекции.
// Snapshot, пришедший из JSON без какой-то коллекции, получает пустую map.
func (s *Snapshot) ensureMaps() {
	if s.Events == nil {
		s.Events = make(map[string]models.Event)
	}
	if s.Tracks == nil {
		s.Tracks = make(map[string]models.Track)
	}
	if s.Images == nil {
		s.Images = make(map[string]models.Image)
	}
	if s.Videos == nil {
		s.Videos = make(map[string]models.Video)
	}
	if s.Articles == nil {
		s.Articles = make(map[string]models.Article)
	}
	if s.Sites == nil {
		s.Sites = make(map[string]models.Site)
	}
	if s.Users == nil {
		s.Users = make(map[string]models.User)
	}
}

// Replica — владеющий контейнер реплики за RWMutex.
// Читатели (листинги) выполняются параллельно друг с другом,
// мутации и merge берут эксклюзивную блокировку на всю длительность.
type Replica struct {
	snap     *Snapshot
	resolver ConflictResolver
	now      func() int64
	mu       sync.RWMutex
}

// New создает пустую реплику с политикой merge по умолчанию (см. merge.go).
func New() *Replica {
	return &Replica{
		snap:     NewSnapshot(),
		resolver: defaultResolver,
		now:      func() int64 { return time.Now().Unix() },
	}
}

// NewWithResolver создает пустую реплику с заданной стратегией разрешения
// конфликтов вместо политики по умолчанию.
func NewWithResolver(resolver ConflictResolver) *Replica {
	r := New()
	if resolver != nil {
		r.resolver = resolver
	}
	return r
}

// FromSnapshot создает реплику из ранее сохраненного snapshot,
// например загруженного из локального хранилища при старте.
// Snapshot валидируется и копируется: вызывающий сохраняет владение своим экземпляром.
func FromSnapshot(s *Snapshot) (*Replica, error) {
	if s == nil {
		return New(), nil
	}
	if err := validateSnapshot(s); err != nil {
		return nil, err
	}
	r := New()
	r.snap = s.Clone()
	r.snap.ensureMaps()
	return r, nil
}

// Snapshot возвращает глубокую копию текущего состояния реплики.
func (r *Replica) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snap.Clone()
}

// Clock возвращает текущее значение логических часов.
func (r *Replica) Clock() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snap.Clock
}

// Status возвращает текущий статус синхронизации.
func (r *Replica) Status() models.SyncStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snap.SyncStatus
}

// LastSync возвращает время последней успешной синхронизации (unix seconds)
// или nil, если синхронизаций еще не было.
func (r *Replica) LastSync() *int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.snap.LastSync == nil {
		return nil
	}
	v := *r.snap.LastSync
	return &v
}

// NeedsSync сообщает, есть ли локальные изменения, ожидающие синхронизации.
func (r *Replica) NeedsSync() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snap.SyncStatus.IsPending()
}

// BeginSync переводит реплику в состояние syncing.
// Допускается из pending и failed (retry). Вызов из synced тоже разрешен
// и трактуется как явный re-pull: это осознанное решение, reference
// поведение оставляло такой вызов неопределенным.
func (r *Replica) BeginSync() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snap.SyncStatus = models.StatusSyncing()
}

// MarkSyncFailed переводит реплику в состояние failed с причиной.
// Вызывается после неудачной попытки синхронизации, в том числе по таймауту
// брошенной попытки (failed("timeout")), чтобы реплика не зависла в syncing.
func (r *Replica) MarkSyncFailed(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snap.SyncStatus = models.StatusFailed(reason)
}

// markMutated фиксирует успешную локальную мутацию:
// часы +1, статус pending независимо от предыдущего.
// Вызывается строго под эксклюзивной блокировкой.
func (r *Replica) markMutated() {
	r.snap.Clock++
	r.snap.SyncStatus = models.StatusPending()
}

// --- Мутации: события ---

// AddEvent добавляет событие или замещает существующее с тем же ID (upsert).
func (r *Replica) AddEvent(event models.Event) error {
	if event.ID == "" {
		return fmt.Errorf("event id is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.snap.Events[event.ID] = event.Clone()
	r.markMutated()
	return nil
}

// UpdateEvent замещает событие целиком. Upsert, как и AddEvent:
// вызывающий не может отличить "уже существовало" от "создано".
func (r *Replica) UpdateEvent(event models.Event) error {
	return r.AddEvent(event)
}

// DeleteEvent удаляет событие по ID.
// Удаление отсутствующего ID — не ошибка (идемпотентно),
// но часы и статус все равно продвигаются.
func (r *Replica) DeleteEvent(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.snap.Events, id)
	r.markMutated()
}

// --- Мутации: треки ---

// AddTrack добавляет трек или замещает существующий с тем же ID (upsert).
func (r *Replica) AddTrack(track models.Track) error {
	if track.ID == "" {
		return fmt.Errorf("track id is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.snap.Tracks[track.ID] = track.Clone()
	r.markMutated()
	return nil
}

// UpdateTrack замещает трек целиком (upsert).
func (r *Replica) UpdateTrack(track models.Track) error {
	return r.AddTrack(track)
}

// DeleteTrack удаляет трек по ID. Идемпотентно.
func (r *Replica) DeleteTrack(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.snap.Tracks, id)
	r.markMutated()
}

// --- Мутации: изображения ---

// AddImage добавляет изображение или замещает существующее с тем же ID (upsert).
func (r *Replica) AddImage(image models.Image) error {
	if image.ID == "" {
		return fmt.Errorf("image id is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.snap.Images[image.ID] = image.Clone()
	r.markMutated()
	return nil
}

// UpdateImage замещает изображение целиком (upsert).
func (r *Replica) UpdateImage(image models.Image) error {
	return r.AddImage(image)
}

// DeleteImage удаляет изображение по ID. Идемпотентно.
func (r *Replica) DeleteImage(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.snap.Images, id)
	r.markMutated()
}

// --- Мутации: статьи ---

// AddArticle добавляет статью или замещает существующую с тем же ID (upsert).
func (r *Replica) AddArticle(article models.Article) error {
	if article.ID == "" {
		return fmt.Errorf("article id is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.snap.Articles[article.ID] = article.Clone()
	r.markMutated()
	return nil
}

// UpdateArticle замещает статью целиком (upsert).
func (r *Replica) UpdateArticle(article models.Article) error {
	return r.AddArticle(article)
}

// DeleteArticle удаляет статью по ID. Идемпотентно.
func (r *Replica) DeleteArticle(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.snap.Articles, id)
	r.markMutated()
}

// Видео, сайты и пользователи локально не мутируются:
// эти коллекции наполняются только через merge с authority.

// --- Точечные чтения ---

// GetEvent возвращает копию события по ID.
func (r *Replica) GetEvent(id string) (models.Event, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.snap.Events[id]
	return e.Clone(), ok
}

// GetTrack возвращает копию трека по ID.
func (r *Replica) GetTrack(id string) (models.Track, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.snap.Tracks[id]
	return t.Clone(), ok
}

// GetImage возвращает копию изображения по ID.
func (r *Replica) GetImage(id string) (models.Image, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	img, ok := r.snap.Images[id]
	return img.Clone(), ok
}

// GetVideo возвращает копию видео по ID.
func (r *Replica) GetVideo(id string) (models.Video, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.snap.Videos[id]
	return v.Clone(), ok
}

// GetArticle возвращает копию статьи по ID.
func (r *Replica) GetArticle(id string) (models.Article, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.snap.Articles[id]
	return a.Clone(), ok
}

// GetSite возвращает копию сайта по ID.
func (r *Replica) GetSite(id string) (models.Site, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.snap.Sites[id]
	return s.Clone(), ok
}

// GetUser возвращает копию пользователя по ID.
func (r *Replica) GetUser(id string) (models.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.snap.Users[id]
	return u.Clone(), ok
}

// --- Листинги по сайту ---
// Порядок результатов не гарантируется: кому нужен порядок,
// тот сортирует по выбранному полю сам.

// ListSiteEvents возвращает все события сайта.
func (r *Replica) ListSiteEvents(siteID string) []models.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Event, 0)
	for _, e := range r.snap.Events {
		if e.SiteID == siteID {
			out = append(out, e.Clone())
		}
	}
	return out
}

// ListSiteTracks возвращает все треки сайта.
func (r *Replica) ListSiteTracks(siteID string) []models.Track {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Track, 0)
	for _, t := range r.snap.Tracks {
		if t.SiteID == siteID {
			out = append(out, t.Clone())
		}
	}
	return out
}

// ListSiteImages возвращает все изображения сайта.
func (r *Replica) ListSiteImages(siteID string) []models.Image {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Image, 0)
	for _, img := range r.snap.Images {
		if img.SiteID == siteID {
			out = append(out, img.Clone())
		}
	}
	return out
}

// ListSiteVideos возвращает все видео сайта.
func (r *Replica) ListSiteVideos(siteID string) []models.Video {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Video, 0)
	for _, v := range r.snap.Videos {
		if v.SiteID == siteID {
			out = append(out, v.Clone())
		}
	}
	return out
}

// ListSiteArticles возвращает все статьи сайта.
func (r *Replica) ListSiteArticles(siteID string) []models.Article {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Article, 0)
	for _, a := range r.snap.Articles {
		if a.SiteID == siteID {
			out = append(out, a.Clone())
		}
	}
	return out
}

// ListSites возвращает все сайты реплики.
func (r *Replica) ListSites() []models.Site {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Site, 0)
	for _, s := range r.snap.Sites {
		out = append(out, s.Clone())
	}
	return out
}

// ListUsers возвращает всех пользователей реплики.
func (r *Replica) ListUsers() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0)
	for _, u := range r.snap.Users {
		out = append(out, u.Clone())
	}
	return out
}
