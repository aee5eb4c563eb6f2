// Package store — адаптер key-value хранилища: коллекции лежат целиком,
// как сериализованные JSON-массивы под строковыми ключами.
package store

const (
	KeyFoods = "dct_foods_v1"
	KeyMeals = "dct_meals_v1"
	KeyGoals = "dct_goals_v1"
)

// Store хранит непрозрачные блобы по ключу.
// Get возвращает nil, nil если ключа нет.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
