// Package controller - Monitored region definitions and the built-in line layouts.
package controller

import (
	"fmt"
	"image"
	"image/color"
)

// Role identifies what a confirmed event in a region means for the counts.
type Role int

const (
	// RoleBasketEntry marks the region where empty baskets enter.
	RoleBasketEntry Role = iota
	// RoleBasketExit marks the region where filled baskets leave.
	RoleBasketExit
	// RoleBurger marks the mid-belt region where single burgers pass.
	RoleBurger
)

// String returns the role name used in logs.
func (r Role) String() string {
	switch r {
	case RoleBasketEntry:
		return "basket_entry"
	case RoleBasketExit:
		return "basket_exit"
	case RoleBurger:
		return "burger"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// AreaRange is an open interval of contour areas in square pixels.
type AreaRange struct {
	Min float64
	Max float64
}

// Contains reports whether area lies strictly between Min and Max.
func (a AreaRange) Contains(area float64) bool {
	return area > a.Min && area < a.Max
}

// Empty reports whether no area can satisfy the range.
func (a AreaRange) Empty() bool {
	return a.Min >= a.Max
}

// Region is an immutable monitored rectangle of the frame.
type Region struct {
	// Name is a short label used in logs and reports.
	Name string
	// Role decides how confirmed events update the counts.
	Role Role
	// Bounds is the rectangle in frame pixel coordinates.
	Bounds image.Rectangle
	// Area filters contours by enclosed area.
	Area AreaRange
	// MinInterval is the cooldown between confirmed events, in seconds.
	MinInterval float64
	// Color is used when the region is drawn on a frame.
	Color color.RGBA
}

// Thresholds are the detection parameters shared by every layout.
type Thresholds struct {
	BasketArea     AreaRange
	BurgerArea     AreaRange
	BasketInterval float64
	BurgerInterval float64
}

// DefaultThresholds returns the production line's compiled-in thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BasketArea:     AreaRange{Min: 1000, Max: 10000},
		BurgerArea:     AreaRange{Min: 100, Max: 500},
		BasketInterval: 2.0,
		BurgerInterval: 0.5,
	}
}

// Layout names accepted by LayoutRegions.
const (
	LayoutBasket = "basket"
	LayoutBurger = "burger"
)

// Overlay colors per role.
var (
	EntryColor  = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	ExitColor   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	BurgerColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}
)

// rect builds a rectangle from an origin and a size.
func rect(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}

// TwoRegionLayout returns the basket entry and exit regions for a frame of the given size.
//
// The entry band spans the middle 40% of the width near the top; the exit band is the
// bottom 100 pixel rows.
func TwoRegionLayout(width, height int, th Thresholds) []Region {
	return []Region{
		{
			Name:        "basket_entry",
			Role:        RoleBasketEntry,
			Bounds:      rect(int(float64(width)*0.3), 50, int(float64(width)*0.4), 100),
			Area:        th.BasketArea,
			MinInterval: th.BasketInterval,
			Color:       EntryColor,
		},
		{
			Name:        "basket_exit",
			Role:        RoleBasketExit,
			Bounds:      rect(0, height-100, width, 100),
			Area:        th.BasketArea,
			MinInterval: th.BasketInterval,
			Color:       ExitColor,
		},
	}
}

// ThreeRegionLayout returns the entry, exit and mid-belt burger regions for a frame of
// the given size.
func ThreeRegionLayout(width, height int, th Thresholds) []Region {
	burgerWidth := int(float64(width) * 0.3)
	return []Region{
		{
			Name:        "basket_entry",
			Role:        RoleBasketEntry,
			Bounds:      rect(0, 0, width, int(float64(height)*0.1720)),
			Area:        th.BasketArea,
			MinInterval: th.BasketInterval,
			Color:       EntryColor,
		},
		{
			Name:        "basket_exit",
			Role:        RoleBasketExit,
			Bounds:      rect(0, height-100, width, 100),
			Area:        th.BasketArea,
			MinInterval: th.BasketInterval,
			Color:       ExitColor,
		},
		{
			Name:        "burger",
			Role:        RoleBurger,
			Bounds:      rect(width-burgerWidth, 0, burgerWidth, height),
			Area:        th.BurgerArea,
			MinInterval: th.BurgerInterval,
			Color:       BurgerColor,
		},
	}
}

// LayoutRegions resolves a layout name into regions for a frame of the given size.
func LayoutRegions(name string, width, height int, th Thresholds) ([]Region, error) {
	switch name {
	case LayoutBasket:
		return TwoRegionLayout(width, height, th), nil
	case LayoutBurger:
		return ThreeRegionLayout(width, height, th), nil
	default:
		return nil, fmt.Errorf("unknown layout %q", name)
	}
}
