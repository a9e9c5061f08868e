package gotext

import (
	"github.com/go-text/typesetting/font"
	"github.com/npillmayer/termfont/engine"
)

// Aspect converts engine face properties to a go-text aspect. Oblique is
// mapped to italic, as go-text does not distinguish the two.
func Aspect(weight engine.FontWeight, stretch engine.FontStretch, style engine.FontStyle) font.Aspect {
	as := font.Aspect{
		Weight:  font.Weight(weight),
		Stretch: stretchValues[engine.FontStretchNormal],
		Style:   font.StyleNormal,
	}
	if stretch > engine.FontStretchUndefined && stretch <= engine.FontStretchUltraExpanded {
		as.Stretch = stretchValues[stretch]
	}
	if style != engine.FontStyleNormal {
		as.Style = font.StyleItalic
	}
	as.SetDefaults()
	return as
}

var stretchValues = [...]font.Stretch{
	engine.FontStretchUndefined:      0,
	engine.FontStretchUltraCondensed: font.StretchUltraCondensed,
	engine.FontStretchExtraCondensed: font.StretchExtraCondensed,
	engine.FontStretchCondensed:      font.StretchCondensed,
	engine.FontStretchSemiCondensed:  font.StretchSemiCondensed,
	engine.FontStretchNormal:         font.StretchNormal,
	engine.FontStretchSemiExpanded:   font.StretchSemiExpanded,
	engine.FontStretchExpanded:       font.StretchExpanded,
	engine.FontStretchExtraExpanded:  font.StretchExtraExpanded,
	engine.FontStretchUltraExpanded:  font.StretchUltraExpanded,
}

// retainBestMatches narrows members to the ones closest to query, according
// to CSS Fonts Level 3 § 5.2: stretch first, then style, then weight.
// https://drafts.csswg.org/css-fonts-3/#font-style-matching
//
// If members is not empty, the result is not empty.
func retainBestMatches(members []*member, query font.Aspect) []*member {
	candidates := make([]*member, len(members))
	copy(candidates, members)
	query.SetDefaults()
	//
	stretch := matchStretch(candidates, query.Stretch)
	candidates = filter(candidates, func(m *member) bool { return m.aspect.Stretch == stretch })
	style := matchStyle(candidates, query.Style)
	candidates = filter(candidates, func(m *member) bool { return m.aspect.Style == style })
	weight := matchWeight(candidates, query.Weight)
	candidates = filter(candidates, func(m *member) bool { return m.aspect.Weight == weight })
	return candidates
}

func filter(candidates []*member, keep func(*member) bool) []*member {
	n := 0
	for _, m := range candidates {
		if keep(m) {
			candidates[n] = m
			n++
		}
	}
	return candidates[:n]
}

// matchStretch returns the stretch of candidates closest to query.
// Narrower stretches are preferred for queries up to normal, wider ones
// otherwise.
func matchStretch(candidates []*member, query font.Stretch) font.Stretch {
	var narrower, wider font.Stretch
	for _, m := range candidates {
		stretch := m.aspect.Stretch
		switch {
		case stretch == query:
			return query
		case stretch > query:
			if wider == 0 || stretch-query < wider-query {
				wider = stretch
			}
		default:
			if query-stretch < query-narrower {
				narrower = stretch
			}
		}
	}
	if query <= font.StretchNormal {
		if narrower != 0 {
			return narrower
		}
		return wider
	}
	if wider != 0 {
		return wider
	}
	return narrower
}

// matchStyle returns the style of candidates closest to query. Italic
// queries fall back to normal faces and vice versa.
func matchStyle(candidates []*member, query font.Style) font.Style {
	var hasNormal, hasItalic bool
	for _, m := range candidates {
		switch m.aspect.Style {
		case font.StyleNormal:
			hasNormal = true
		case font.StyleItalic:
			hasItalic = true
		}
	}
	if query == font.StyleItalic {
		if hasItalic || !hasNormal {
			return font.StyleItalic
		}
		return font.StyleNormal
	}
	if hasNormal || !hasItalic {
		return font.StyleNormal
	}
	return font.StyleItalic
}

// matchWeight returns the weight of candidates closest to query.
// For queries in [400…500] heavier weights up to 500 are tried first, then
// lighter ones, then heavier ones. Queries below 400 prefer lighter weights,
// queries above 500 prefer heavier weights.
func matchWeight(candidates []*member, query font.Weight) font.Weight {
	var heavier, lighter font.Weight
	for _, m := range candidates {
		weight := m.aspect.Weight
		switch {
		case weight == query:
			return query
		case weight > query:
			if heavier == 0 || weight-query < heavier-query {
				heavier = weight
			}
		default:
			if query-weight < query-lighter {
				lighter = weight
			}
		}
	}
	switch {
	case 400 <= query && query <= 500:
		if heavier != 0 && heavier <= 500 {
			return heavier
		} else if lighter != 0 {
			return lighter
		}
		return heavier
	case query < 400:
		if lighter != 0 {
			return lighter
		}
		return heavier
	}
	if heavier != 0 {
		return heavier
	}
	return lighter
}
