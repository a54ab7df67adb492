package core

// Color is a semantic colour role for a screen cell. The host maps roles to
// concrete terminal colours through its active theme.
type Color uint8

const (
	ColorDefault Color = iota
	ColorHUD
	ColorBorder
	ColorSnakeHead
	ColorSnakeBody
	ColorFood
	ColorAccent
	ColorDim
	ColorDanger
)

// Roles lists every colour role, in declaration order.
var Roles = []Color{
	ColorDefault,
	ColorHUD,
	ColorBorder,
	ColorSnakeHead,
	ColorSnakeBody,
	ColorFood,
	ColorAccent,
	ColorDim,
	ColorDanger,
}
