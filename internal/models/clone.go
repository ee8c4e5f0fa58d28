package models

// Функции глубокого копирования записей контент-графа.
// Коллекции реплики никогда не отдаются наружу по ссылке,
// поэтому все срезы и указатели копируются.

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func cloneInt64Ptr(src *int64) *int64 {
	if src == nil {
		return nil
	}
	v := *src
	return &v
}

// Clone возвращает глубокую копию события.
func (e Event) Clone() Event {
	return e
}

// Clone возвращает глубокую копию трека.
func (t Track) Clone() Track {
	out := t
	out.Genres = cloneStrings(t.Genres)
	return out
}

// Clone возвращает глубокую копию изображения.
func (i Image) Clone() Image {
	out := i
	out.Tags = cloneStrings(i.Tags)
	return out
}

// Clone возвращает глубокую копию видео.
func (v Video) Clone() Video {
	return v
}

// Clone возвращает глубокую копию статьи.
func (a Article) Clone() Article {
	out := a
	out.PublishedAt = cloneInt64Ptr(a.PublishedAt)
	return out
}

// Clone возвращает глубокую копию сайта.
func (s Site) Clone() Site {
	out := s
	out.MemberIDs = cloneStrings(s.MemberIDs)
	return out
}

// Clone возвращает глубокую копию пользователя.
func (u User) Clone() User {
	out := u
	out.Roles = cloneStrings(u.Roles)
	out.LastLogin = cloneInt64Ptr(u.LastLogin)
	return out
}
