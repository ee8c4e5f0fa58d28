package models

// Event представляет концерт или выступление, привязанное к сайту.
// Event участвует в LWW-merge по полю UpdatedAt.
type Event struct {
	ID          string `json:"id"`                    // ID уникальный идентификатор события (UUID)
	SiteID      string `json:"site_id"`               // SiteID сайт, которому принадлежит событие
	Title       string `json:"title"`                 // Title название события
	Venue       string `json:"venue"`                 // Venue название площадки
	Address     string `json:"address,omitempty"`     // Address адрес площадки (опционально)
	Date        int64  `json:"date"`                  // Date дата события (unix seconds)
	StartTime   string `json:"start_time"`            // StartTime время начала в формате HH:MM
	TicketURL   string `json:"ticket_url,omitempty"`  // TicketURL ссылка на билеты (опционально)
	Description string `json:"description,omitempty"` // Description описание события (опционально)
	Status      string `json:"status"`                // Status статус события (см. EventStatus*)
	CreatedBy   string `json:"created_by"`            // CreatedBy ID пользователя-автора
	CreatedAt   int64  `json:"created_at"`            // CreatedAt время создания (unix seconds)
	UpdatedAt   int64  `json:"updated_at"`            // UpdatedAt время последнего изменения (unix seconds)
}

// Статусы события
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusLive      = "live"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// Track представляет композицию в репертуаре сайта.
// Track не несет timestamp изменения и при merge замещается удаленной копией безусловно.
type Track struct {
	ID              string   `json:"id"`                         // ID уникальный идентификатор трека (UUID)
	SiteID          string   `json:"site_id"`                    // SiteID сайт, которому принадлежит трек
	Title           string   `json:"title"`                      // Title название композиции
	Artist          string   `json:"artist,omitempty"`           // Artist исполнитель оригинала (для каверов)
	Genres          []string `json:"genres,omitempty"`           // Genres жанровые теги
	DurationSeconds int      `json:"duration_seconds,omitempty"` // DurationSeconds длительность в секундах
	IsOriginal      bool     `json:"is_original"`                // IsOriginal оригинальная композиция или кавер
	MusicalKey      string   `json:"musical_key,omitempty"`      // MusicalKey тональность (опционально)
	Notes           string   `json:"notes,omitempty"`            // Notes заметки для участников
	CreatedAt       int64    `json:"created_at"`                 // CreatedAt время создания (unix seconds)
}

// Image представляет изображение, загруженное на CDN.
// Image не несет timestamp изменения и при merge замещается удаленной копией безусловно.
type Image struct {
	ID         string   `json:"id"`                 // ID уникальный идентификатор изображения (UUID)
	SiteID     string   `json:"site_id"`            // SiteID сайт, которому принадлежит изображение
	Filename   string   `json:"filename"`           // Filename исходное имя файла
	URLFull    string   `json:"url_full"`           // URLFull CDN URL полноразмерной версии
	URLThumb   string   `json:"url_thumb"`          // URLThumb CDN URL миниатюры
	SizeBytes  int64    `json:"size_bytes"`         // SizeBytes размер файла в байтах
	Width      int      `json:"width"`              // Width ширина в пикселях
	Height     int      `json:"height"`             // Height высота в пикселях
	AltText    string   `json:"alt_text,omitempty"` // AltText альтернативный текст (опционально)
	Caption    string   `json:"caption,omitempty"`  // Caption подпись (опционально)
	Tags       []string `json:"tags,omitempty"`     // Tags теги для категоризации
	UploadedBy string   `json:"uploaded_by"`        // UploadedBy ID пользователя, загрузившего файл
	UploadedAt int64    `json:"uploaded_at"`        // UploadedAt время загрузки (unix seconds)
}

// Video представляет видео (внешний хостинг или прямая ссылка).
// Video не несет timestamp изменения и при merge замещается удаленной копией безусловно.
type Video struct {
	ID              string `json:"id"`                         // ID уникальный идентификатор видео (UUID)
	SiteID          string `json:"site_id"`                    // SiteID сайт, которому принадлежит видео
	Title           string `json:"title"`                      // Title название видео
	Description     string `json:"description,omitempty"`      // Description описание (опционально)
	SourceURL       string `json:"source_url"`                 // SourceURL URL источника (YouTube, Vimeo, прямая ссылка)
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`    // ThumbnailURL URL превью (опционально)
	DurationSeconds int    `json:"duration_seconds,omitempty"` // DurationSeconds длительность в секундах
	ViewCount       int64  `json:"view_count"`                 // ViewCount количество просмотров
	PublishedAt     int64  `json:"published_at"`               // PublishedAt время публикации (unix seconds)
}

// Article представляет запись блога или новость сайта.
// Article участвует в LWW-merge по полю UpdatedAt.
type Article struct {
	ID           string `json:"id"`                       // ID уникальный идентификатор статьи (UUID)
	SiteID       string `json:"site_id"`                  // SiteID сайт, которому принадлежит статья
	Title        string `json:"title"`                    // Title заголовок
	Slug         string `json:"slug"`                     // Slug URL-friendly идентификатор
	Content      string `json:"content"`                  // Content содержимое (Markdown)
	Excerpt      string `json:"excerpt,omitempty"`        // Excerpt краткое описание (опционально)
	CoverImageID string `json:"cover_image_id,omitempty"` // CoverImageID ID обложки из коллекции изображений
	AuthorID     string `json:"author_id"`                // AuthorID ID автора
	Status       string `json:"status"`                   // Status статус публикации (см. ArticleStatus*)
	PublishedAt  *int64 `json:"published_at,omitempty"`   // PublishedAt время публикации, nil для черновиков
	CreatedAt    int64  `json:"created_at"`               // CreatedAt время создания (unix seconds)
	UpdatedAt    int64  `json:"updated_at"`               // UpdatedAt время последнего изменения (unix seconds)
}

// Статусы статьи
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusScheduled = "scheduled"
	ArticleStatusPublished = "published"
	ArticleStatusArchived  = "archived"
)

// Site представляет сайт (deployment target).
// Site считается неизменяемым после создания, merge сравнивает CreatedAt.
// Это слабее настоящего LWW: правка существующего сайта merge не детектируется.
type Site struct {
	ID          string   `json:"id"`                    // ID уникальный идентификатор сайта (UUID)
	Slug        string   `json:"slug"`                  // Slug идентификатор для URL
	Name        string   `json:"name"`                  // Name название сайта
	Domain      string   `json:"domain,omitempty"`      // Domain кастомный домен (опционально)
	Description string   `json:"description,omitempty"` // Description описание (опционально)
	OwnerID     string   `json:"owner_id"`              // OwnerID ID владельца
	MemberIDs   []string `json:"member_ids,omitempty"`  // MemberIDs пользователи с доступом к сайту
	Theme       string   `json:"theme"`                 // Theme тема оформления
	Status      string   `json:"status"`                // Status статус деплоя (см. SiteStatus*)
	CreatedAt   int64    `json:"created_at"`            // CreatedAt время создания (unix seconds)
}

// Статусы сайта
const (
	SiteStatusActive   = "active"
	SiteStatusBuilding = "building"
	SiteStatusFailed   = "failed"
	SiteStatusArchived = "archived"
)

// User представляет пользователя контент-графа.
// User не несет timestamp изменения и при merge замещается удаленной копией безусловно.
// Роли хранятся как строки: матрица прав находится вне ядра.
type User struct {
	ID        string   `json:"id"`                   // ID уникальный идентификатор пользователя (UUID)
	Email     string   `json:"email"`                // Email адрес электронной почты
	Name      string   `json:"name"`                 // Name отображаемое имя
	Roles     []string `json:"roles,omitempty"`      // Roles назначенные роли (admin, content, media, readonly)
	Status    string   `json:"status"`               // Status статус аккаунта (см. UserStatus*)
	CreatedAt int64    `json:"created_at"`           // CreatedAt время создания (unix seconds)
	LastLogin *int64   `json:"last_login,omitempty"` // LastLogin время последнего входа, nil если не входил
}

// Статусы пользователя
const (
	UserStatusActive    = "active"
	UserStatusPending   = "pending"
	UserStatusSuspended = "suspended"
	UserStatusDeleted   = "deleted"
)
