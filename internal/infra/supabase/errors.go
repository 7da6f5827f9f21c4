package supabase

import "errors"

var (
	// ErrRequest запрос к PostgREST завершился ошибкой
	ErrRequest = errors.New("supabase: request failed")

	// ErrDecode ответ PostgREST не удалось разобрать
	ErrDecode = errors.New("supabase: failed to decode response")
)
