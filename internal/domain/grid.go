package domain

import (
	"math"
	"math/rand"
)

// CellKind - тип клетки сетки.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellWall
	CellDoor
)

func (c CellKind) String() string {
	switch c {
	case CellWall:
		return "WALL"
	case CellDoor:
		return "DOOR"
	default:
		return "EMPTY"
	}
}

// Cell - координаты клетки (X - колонка, Y - строка).
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// GridWorld - квадратная сетка клеток. Одновременно и карта для рендера,
// и пространство физики/ИИ. После генерации не мутируется: на переход
// уровня мир пересоздается целиком.
type GridWorld struct {
	Size     int          `json:"size"`
	CellUnit float64      `json:"cellUnit"` // размер ребра клетки в мировых единицах
	Cells    [][]CellKind `json:"cells"`    // [y][x]

	// FreeSpaces - клетки, пригодные для спавна: пустые и без стен
	// в 8-соседстве. Заполняется генератором.
	FreeSpaces []Cell `json:"-"`

	// BoundaryWalls - замкнут ли внешний периметр стенами.
	// Гарантирует, что любой луч завершается.
	BoundaryWalls bool `json:"-"`
}

// InBounds проверяет, лежит ли клетка внутри сетки.
func (w *GridWorld) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < w.Size && y < w.Size
}

// KindAt возвращает тип клетки. Выход за границы считается стеной:
// для трассировки лучей и коллизий это эквивалентно.
func (w *GridWorld) KindAt(x, y int) CellKind {
	if !w.InBounds(x, y) {
		return CellWall
	}
	return w.Cells[y][x]
}

// IsWallAt - стена ли в клетке (двери проходимы и для лучей, и для движения).
func (w *GridWorld) IsWallAt(x, y int) bool {
	return w.KindAt(x, y) == CellWall
}

// CellCenter возвращает центр клетки в мировых координатах.
func (w *GridWorld) CellCenter(c Cell) Vec2 {
	return Vec2{
		X: (float64(c.X) + 0.5) * w.CellUnit,
		Y: (float64(c.Y) + 0.5) * w.CellUnit,
	}
}

// CellOf возвращает клетку, содержащую мировую точку. Точки левее
// или выше сетки дают отрицательные координаты, не клетку (0, 0).
func (w *GridWorld) CellOf(p Vec2) Cell {
	unit := w.CellUnit
	if unit <= 0 {
		unit = 1
	}
	return Cell{
		X: int(math.Floor(p.X / unit)),
		Y: int(math.Floor(p.Y / unit)),
	}
}

// WorldSide возвращает длину стороны мира в мировых единицах.
func (w *GridWorld) WorldSide() float64 {
	return float64(w.Size) * w.CellUnit
}

// TakeRandomFreeSpace выбирает равномерно случайную свободную клетку.
// При remove=true клетка изымается из пула, чтобы параллельные спавны
// не складывались в одну точку. Пустой пул - документированное
// вырожденное поведение: возвращаем центр карты, но НЕ ошибку.
func (w *GridWorld) TakeRandomFreeSpace(rng *rand.Rand, remove bool) Vec2 {
	if len(w.FreeSpaces) == 0 {
		return Vec2{X: w.WorldSide() / 2, Y: w.WorldSide() / 2}
	}

	idx := rng.Intn(len(w.FreeSpaces))
	cell := w.FreeSpaces[idx]

	if remove {
		last := len(w.FreeSpaces) - 1
		w.FreeSpaces[idx] = w.FreeSpaces[last]
		w.FreeSpaces = w.FreeSpaces[:last]
	}

	return w.CellCenter(cell)
}
