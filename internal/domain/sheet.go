package domain

import "context"

type SheetService interface {
	// Сетка ячеек настроенного диапазона, первая строка - заголовки
	ReadGrid(ctx context.Context) ([][]interface{}, error)
}
