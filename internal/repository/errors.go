package repository

import "errors"

var (
	// ErrDuplicateName — продукт с таким именем (без учёта регистра) уже есть
	ErrDuplicateName = errors.New("food-duplicate-name")
	// ErrNotFound — обновление записи, которой нет
	ErrNotFound = errors.New("not-found")
	// ErrCorruptCollection — в хранилище лежит не JSON-массив
	ErrCorruptCollection = errors.New("corrupt-collection")
)
