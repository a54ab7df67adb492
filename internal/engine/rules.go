package engine

// Move slides the snake one cell along dir: a new head is pushed and the tail
// dropped, so the length is unchanged. The input slice is not modified.
func Move(snake []Position, dir Direction) []Position {
	if len(snake) == 0 {
		return nil
	}
	moved := make([]Position, 0, len(snake)+1)
	moved = append(moved, snake[0].Add(dir.Delta()))
	moved = append(moved, snake[:len(snake)-1]...)
	return moved
}

// Grow appends a copy of the tail. The duplicate sits on the tail cell until
// the next slide pulls the rest of the body along.
func Grow(snake []Position) []Position {
	if len(snake) == 0 {
		return nil
	}
	grown := make([]Position, len(snake), len(snake)+1)
	copy(grown, snake)
	return append(grown, snake[len(snake)-1])
}

// Occupies reports whether any segment of snake is at p.
func Occupies(snake []Position, p Position) bool {
	for _, seg := range snake {
		if seg == p {
			return true
		}
	}
	return false
}

// HitsWall reports whether the head left the grid.
func HitsWall(snake []Position) bool {
	return len(snake) > 0 && !snake[0].InBounds()
}

// HitsSelf reports whether the head shares a cell with any later segment.
func HitsSelf(snake []Position) bool {
	if len(snake) == 0 {
		return false
	}
	return Occupies(snake[1:], snake[0])
}

// Collides combines the wall and self checks evaluated after every move.
func Collides(snake []Position) bool {
	return HitsWall(snake) || HitsSelf(snake)
}
