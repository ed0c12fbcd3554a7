/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"strings"

	"comicpage/internal/domain"
)

// Theme holds every colour the renderers use. It is a render parameter;
// renderers never look up UI state on their own.
type Theme struct {
	Name             string
	Paper            domain.Color
	PanelFill        domain.Color
	PanelStroke      domain.Color
	PanelStrokeWidth float64
	Accent           domain.Color
	HandleFill       domain.Color
	HandleStroke     domain.Color
	BadgeFill        domain.Color
	BadgeText        domain.Color
	Ink              domain.Color
	Skin             domain.Color
	Cloth            domain.Color
	Tone             domain.Color
}

func (t Theme) isZero() bool { return t.Name == "" && t.PanelStrokeWidth == 0 }

// LightTheme is the default print-like theme.
func LightTheme() Theme {
	return Theme{
		Name:             "light",
		Paper:            domain.White,
		PanelFill:        domain.White,
		PanelStroke:      domain.Black,
		PanelStrokeWidth: 2,
		Accent:           domain.Color{R: 33, G: 150, B: 243, A: 255},
		HandleFill:       domain.White,
		HandleStroke:     domain.Color{R: 33, G: 150, B: 243, A: 255},
		BadgeFill:        domain.Color{R: 33, G: 150, B: 243, A: 255},
		BadgeText:        domain.White,
		Ink:              domain.Black,
		Skin:             domain.Color{R: 255, G: 224, B: 196, A: 255},
		Cloth:            domain.Color{R: 120, G: 144, B: 180, A: 255},
		Tone:             domain.Black,
	}
}

// DarkTheme inverts the chrome for dark editors; ink stays dark on light panels.
func DarkTheme() Theme {
	t := LightTheme()
	t.Name = "dark"
	t.Paper = domain.Color{R: 30, G: 30, B: 34, A: 255}
	t.PanelFill = domain.Color{R: 245, G: 245, B: 245, A: 255}
	t.PanelStroke = domain.Color{R: 220, G: 220, B: 220, A: 255}
	t.Accent = domain.Color{R: 255, G: 167, B: 38, A: 255}
	t.HandleFill = domain.Color{R: 30, G: 30, B: 34, A: 255}
	t.HandleStroke = t.Accent
	t.BadgeFill = t.Accent
	t.BadgeText = domain.Black
	return t
}

// ThemeByName resolves "light", "dark" or "system" (treated as light).
func ThemeByName(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), "dark") {
		return DarkTheme()
	}
	return LightTheme()
}
