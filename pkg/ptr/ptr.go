// Package ptr помощники для опциональных полей
package ptr

// Ptr возвращает указатель на копию значения
func Ptr[T any](v T) *T {
	return &v
}

// PtrGet разыменовывает указатель, для nil возвращает нулевое значение
func PtrGet[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}

	return *v
}

// Clone возвращает указатель на копию значения или nil
func Clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	return Ptr(*v)
}
