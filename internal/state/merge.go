package state

import (
	"fmt"

	"github.com/iudanet/sitekeeper/internal/models"
)

// ConflictResolver — стратегия слияния коллекций foreign snapshot в local.
// Реализация мутирует только коллекции local; часы, статус синхронизации
// и last_sync принадлежат Merge и стратегией не трогаются.
//
// Стратегия по умолчанию (defaultResolver) обязана быть коммутативной по
// результату и идемпотентной; кастомные реализации должны сохранять эти
// свойства, иначе реплики разойдутся в зависимости от порядка слияний.
type ConflictResolver interface {
	Resolve(local, foreign *Snapshot) error
}

// defaultResolver — задокументированная политика слияния по видам сущностей.
var defaultResolver ConflictResolver = lwwResolver{}

// LastWriteWins возвращает стратегию слияния по умолчанию:
//   - события и статьи: side с большим UpdatedAt побеждает, строгий ">"
//     (при равенстве остается локальная запись);
//   - сайты: то же по CreatedAt — записи считаются неизменяемыми после
//     создания, правку существующего сайта такая политика не детектирует
//     (известное ограничение, унаследованное осознанно);
//   - треки, изображения, видео, пользователи: удаленная запись замещает
//     локальную безусловно, уникальные для каждой стороны записи сохраняются.
//
// Асимметрия между видами намеренная: нормализовывать все виды под одно
// правило нельзя, это изменит результат слияния.
func LastWriteWins() ConflictResolver {
	return lwwResolver{}
}

type lwwResolver struct{}

// Resolve сливает коллекции foreign в local по политике LastWriteWins.
func (lwwResolver) Resolve(local, foreign *Snapshot) error {
	// События: LWW по updated_at, ничья в пользу локальной записи
	for id, fe := range foreign.Events {
		le, ok := local.Events[id]
		if !ok || fe.UpdatedAt > le.UpdatedAt {
			local.Events[id] = fe.Clone()
		}
	}

	// Статьи: LWW по updated_at
	for id, fa := range foreign.Articles {
		la, ok := local.Articles[id]
		if !ok || fa.UpdatedAt > la.UpdatedAt {
			local.Articles[id] = fa.Clone()
		}
	}

	// Сайты: сравнение по created_at, записи эффективно неизменяемые
	for id, fs := range foreign.Sites {
		ls, ok := local.Sites[id]
		if !ok || fs.CreatedAt > ls.CreatedAt {
			local.Sites[id] = fs.Clone()
		}
	}

	// Треки, изображения, видео, пользователи: remote always wins
	for id, ft := range foreign.Tracks {
		local.Tracks[id] = ft.Clone()
	}
	for id, fi := range foreign.Images {
		local.Images[id] = fi.Clone()
	}
	for id, fv := range foreign.Videos {
		local.Videos[id] = fv.Clone()
	}
	for id, fu := range foreign.Users {
		local.Users[id] = fu.Clone()
	}

	return nil
}

// Merge сливает foreign snapshot в реплику по настроенной стратегии.
//
// Foreign валидируется целиком до первой записи: внутренне противоречивый
// snapshot отклоняется с ошибкой MergeConflict, локальная реплика остается
// нетронутой. После успешного слияния коллекций:
//
//	clock      = max(local.clock, foreign.clock)
//	status     = synced
//	last_sync  = now
//
// Для стратегии по умолчанию операция идемпотентна и коммутативна по
// результату: merge(merge(r, s), s) == merge(r, s), а порядок слияния двух
// snapshot не влияет на итоговые записи.
func (r *Replica) Merge(foreign *Snapshot) error {
	if foreign == nil {
		return MergeConflictError("foreign snapshot is nil")
	}
	if err := validateSnapshot(foreign); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.resolver.Resolve(r.snap, foreign); err != nil {
		return MergeConflictError(err.Error())
	}

	if foreign.Clock > r.snap.Clock {
		r.snap.Clock = foreign.Clock
	}
	r.snap.SyncStatus = models.StatusSynced()
	now := r.now()
	r.snap.LastSync = &now

	return nil
}

// validateSnapshot защитно проверяет внутреннюю согласованность snapshot:
// ключ каждой коллекции обязан совпадать с ID самой записи, пустые ID
// запрещены. Дубликаты внутри одной map невозможны по построению, но
// расхождение ключа и ID означает, что snapshot собран некорректно.
func validateSnapshot(s *Snapshot) error {
	check := func(kind, key, id string) error {
		if id == "" {
			return MergeConflictError(fmt.Sprintf("%s %q has empty id", kind, key))
		}
		if key != id {
			return MergeConflictError(fmt.Sprintf("%s key %q does not match record id %q", kind, key, id))
		}
		return nil
	}

	for key, e := range s.Events {
		if err := check("event", key, e.ID); err != nil {
			return err
		}
	}
	for key, t := range s.Tracks {
		if err := check("track", key, t.ID); err != nil {
			return err
		}
	}
	for key, img := range s.Images {
		if err := check("image", key, img.ID); err != nil {
			return err
		}
	}
	for key, v := range s.Videos {
		if err := check("video", key, v.ID); err != nil {
			return err
		}
	}
	for key, a := range s.Articles {
		if err := check("article", key, a.ID); err != nil {
			return err
		}
	}
	for key, site := range s.Sites {
		if err := check("site", key, site.ID); err != nil {
			return err
		}
	}
	for key, u := range s.Users {
		if err := check("user", key, u.ID); err != nil {
			return err
		}
	}

	return nil
}
