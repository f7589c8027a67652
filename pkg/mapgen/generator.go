package mapgen

import (
	"math/rand"

	"gloomgrid-server/internal/domain"
	"gloomgrid-server/pkg/logger"
)

// Константы генерации
const (
	// roomAreaScale переводит RoomDensity в целевую площадь комнат.
	roomAreaScale = 0.5

	// fallbackStride - шаг резервной решетки гарантированно чистых
	// карманов 3x3.
	fallbackStride = 4
)

// Rect - вспомогательная структура для комнаты (внешний контур,
// включая клетки границы-стены).
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Intersects проверяет пересечение с учетом отступа в 1 клетку:
// комнаты вплотную тоже считаются пересекающимися.
func (r Rect) Intersects(other Rect) bool {
	const pad = 1
	return r.X-pad <= other.X+other.W && r.X+r.W+pad >= other.X &&
		r.Y-pad <= other.Y+other.H && r.Y+r.H+pad >= other.Y
}

// onBorder - лежит ли клетка на периметре комнаты.
func (r Rect) onBorder(x, y int) bool {
	if x < r.X || x > r.X+r.W-1 || y < r.Y || y > r.Y+r.H-1 {
		return false
	}
	return x == r.X || x == r.X+r.W-1 || y == r.Y || y == r.Y+r.H-1
}

// Generate создает мир по сиду. Детерминирован: одинаковые
// (seed, size, settings) дают идентичную сетку клетка-в-клетку.
//
// Второе возвращаемое значение - сработала ли резервная решетка
// (вырожденный мир восстановлен; предупреждение, не ошибка).
func Generate(seed int64, size int, s Settings) (*domain.GridWorld, bool, error) {
	if err := s.Validate(size); err != nil {
		return nil, false, err
	}

	// Только локальный генератор: глобальный rand сломал бы
	// воспроизводимость тестов и реплеев.
	rng := rand.New(rand.NewSource(seed))

	w := &domain.GridWorld{
		Size:          size,
		CellUnit:      s.CellUnit,
		BoundaryWalls: s.BoundaryWalls,
		Cells:         make([][]domain.CellKind, size),
	}
	for y := 0; y < size; y++ {
		w.Cells[y] = make([]domain.CellKind, size)
	}

	// 1. Внешнее кольцо стен. Гарантирует завершение любого луча.
	if s.BoundaryWalls {
		for i := 0; i < size; i++ {
			w.Cells[0][i] = domain.CellWall
			w.Cells[size-1][i] = domain.CellWall
			w.Cells[i][0] = domain.CellWall
			w.Cells[i][size-1] = domain.CellWall
		}
	}

	// 2. Комнаты: до исчерпания бюджета попыток или достижения
	// целевой плотности.
	rooms := placeRooms(w, rng, size, s)

	// 3. Коридоры между комнатами в порядке размещения.
	carver := corridorCarver{world: w, rooms: rooms, width: s.CorridorWidth}
	for i := 1; i < len(rooms); i++ {
		carver.connect(rng, rooms[i-1], rooms[i])
	}

	// Дополнительные связи между несоседними парами.
	for i := 0; i < len(rooms); i++ {
		for j := i + 2; j < len(rooms); j++ {
			if rng.Float64() < s.ExtraConnections {
				carver.connect(rng, rooms[i], rooms[j])
			}
		}
	}

	// 4. Декоративные стены - только вплотную к существующим, чтобы
	// не плодить одиночные препятствия посреди зала.
	scatterDecorations(w, rng, size, s)

	// 5. Индекс свободных клеток.
	w.FreeSpaces = scanFreeSpaces(w)

	// 6. Патологический сид/настройки: синтезируем резервную решетку.
	recovered := false
	if len(w.FreeSpaces) == 0 {
		carveFallbackLattice(w)
		recovered = true
		logger.Log.WithField("seed", seed).
			Warn("Free-space scan found nothing, fallback lattice carved")
	}

	return w, recovered, nil
}

// placeRooms размещает непересекающиеся комнаты, штампует их границы
// стенами и пробивает по одной двери.
func placeRooms(w *domain.GridWorld, rng *rand.Rand, size int, s Settings) []Rect {
	targetArea := float64(size*size) * s.RoomDensity * roomAreaScale

	var rooms []Rect
	placedArea := 0.0

	for attempt := 0; attempt < s.PlacementAttempts && placedArea < targetArea; attempt++ {
		rw := randRange(rng, s.MinRoomSize, s.MaxRoomSize)
		rh := randRange(rng, s.MinRoomSize, s.MaxRoomSize)
		if size-rw-2 < 1 || size-rh-2 < 1 {
			continue
		}
		room := Rect{
			X: randRange(rng, 1, size-rw-1),
			Y: randRange(rng, 1, size-rh-1),
			W: rw, H: rh,
		}

		overlaps := false
		for _, other := range rooms {
			if room.Intersects(other) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		stampRoom(w, room)
		placeDoor(w, rng, room)

		rooms = append(rooms, room)
		placedArea += float64(rw * rh)
	}

	return rooms
}

// stampRoom выкладывает границу комнаты стеной и очищает внутренность.
func stampRoom(w *domain.GridWorld, r Rect) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if r.onBorder(x, y) {
				w.Cells[y][x] = domain.CellWall
			} else {
				w.Cells[y][x] = domain.CellEmpty
			}
		}
	}
}

// placeDoor пробивает одну дверь на случайной стороне комнаты
// (не в углу).
func placeDoor(w *domain.GridWorld, rng *rand.Rand, r Rect) {
	if r.W < 3 || r.H < 3 {
		return
	}
	var x, y int
	switch rng.Intn(4) {
	case 0: // север
		x, y = r.X+1+rng.Intn(r.W-2), r.Y
	case 1: // юг
		x, y = r.X+1+rng.Intn(r.W-2), r.Y+r.H-1
	case 2: // запад
		x, y = r.X, r.Y+1+rng.Intn(r.H-2)
	default: // восток
		x, y = r.X+r.W-1, r.Y+1+rng.Intn(r.H-2)
	}
	w.Cells[y][x] = domain.CellDoor
}

// corridorCarver вырезает L-образные коридоры между центрами комнат.
type corridorCarver struct {
	world *domain.GridWorld
	rooms []Rect
	width int
}

// connect соединяет две комнаты: случайный выбор
// горизонталь-потом-вертикаль или наоборот.
func (c *corridorCarver) connect(rng *rand.Rand, a, b Rect) {
	ax, ay := a.Center()
	bx, by := b.Center()

	if rng.Intn(2) == 0 {
		c.carveH(ax, bx, ay)
		c.carveV(ay, by, bx)
	} else {
		c.carveV(ay, by, ax)
		c.carveH(ax, bx, by)
	}
}

func (c *corridorCarver) carveH(x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		for off := 0; off < c.width; off++ {
			c.carveCell(x, y+off)
		}
	}
}

func (c *corridorCarver) carveV(y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		for off := 0; off < c.width; off++ {
			c.carveCell(x+off, y)
		}
	}
}

// carveCell превращает стену в дверь на границе комнаты и в пустоту
// в остальных местах. Существующую дверь никогда не понижает.
func (c *corridorCarver) carveCell(x, y int) {
	w := c.world
	// Внешнее кольцо не трогаем.
	if x < 1 || y < 1 || x >= w.Size-1 || y >= w.Size-1 {
		return
	}
	switch w.Cells[y][x] {
	case domain.CellDoor:
		return
	case domain.CellWall:
		for _, r := range c.rooms {
			if r.onBorder(x, y) {
				w.Cells[y][x] = domain.CellDoor
				return
			}
		}
		w.Cells[y][x] = domain.CellEmpty
	}
}

// scatterDecorations рассыпает редкие декоративные стены рядом с
// существующими стенами.
func scatterDecorations(w *domain.GridWorld, rng *rand.Rand, size int, s Settings) {
	count := int(float64(size*size) * s.DecorationDensity)
	for i := 0; i < count; i++ {
		x := randRange(rng, 1, size-2)
		y := randRange(rng, 1, size-2)
		if w.Cells[y][x] != domain.CellEmpty {
			continue
		}
		if hasNeighborOfKind(w, x, y, domain.CellWall) && !hasNeighborOfKind(w, x, y, domain.CellDoor) {
			w.Cells[y][x] = domain.CellWall
		}
	}
}

func hasNeighborOfKind(w *domain.GridWorld, x, y int, kind domain.CellKind) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if w.KindAt(x+dx, y+dy) == kind {
				return true
			}
		}
	}
	return false
}

// scanFreeSpaces собирает все пустые клетки без стен в 8-соседстве.
func scanFreeSpaces(w *domain.GridWorld) []domain.Cell {
	var free []domain.Cell
	for y := 1; y < w.Size-1; y++ {
		for x := 1; x < w.Size-1; x++ {
			if w.Cells[y][x] != domain.CellEmpty {
				continue
			}
			if !hasNeighborOfKind(w, x, y, domain.CellWall) {
				free = append(free, domain.Cell{X: x, Y: y})
			}
		}
	}
	return free
}

// carveFallbackLattice синтезирует детерминированную решетку чистых
// карманов 3x3, чтобы спавн никогда не мог провалиться. Определенный
// путь восстановления, а не аварийная ситуация. Центры карманов
// попадают в FreeSpaces даже когда крошечная карта не позволяет
// выполнить правило 8-соседства.
func carveFallbackLattice(w *domain.GridWorld) {
	lo, hi := 1, w.Size-2
	if !w.BoundaryWalls {
		lo, hi = 0, w.Size-1
	}

	for cy := lo + 1; cy <= hi; cy += fallbackStride {
		for cx := lo + 1; cx <= hi; cx += fallbackStride {
			for y := cy - 1; y <= cy+1; y++ {
				for x := cx - 1; x <= cx+1; x++ {
					if x >= lo && x <= hi && y >= lo && y <= hi {
						w.Cells[y][x] = domain.CellEmpty
					}
				}
			}
			w.FreeSpaces = append(w.FreeSpaces, domain.Cell{X: cx, Y: cy})
		}
	}
}

func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return rng.Intn(hi-lo+1) + lo
}
