// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package classify

import "github.com/TimBroddin/raybun/internal/protocol"

// Category groups payload kinds that share a display color.
type Category string

const (
	CategoryLog     Category = "log"
	CategoryError   Category = "error"
	CategoryQuery   Category = "query"
	CategoryData    Category = "data"
	CategoryMarkup  Category = "markup"
	CategoryTiming  Category = "timing"
	CategoryValue   Category = "value"
	CategoryMedia   Category = "media"
	CategoryControl Category = "control"
	CategoryDefault Category = "default"
)

// categories covers every known kind. TestCategoryCoversVocabulary keeps it
// in step with protocol.Kinds().
var categories = map[protocol.Kind]Category{
	protocol.KindLog:            CategoryLog,
	protocol.KindApplicationLog: CategoryLog,
	protocol.KindNotify:         CategoryLog,
	protocol.KindException:      CategoryError,
	protocol.KindQuery:          CategoryQuery,
	protocol.KindTable:          CategoryData,
	protocol.KindJSON:           CategoryData,
	protocol.KindTrace:          CategoryData,
	protocol.KindCaller:         CategoryData,
	protocol.KindHTML:           CategoryMarkup,
	protocol.KindXML:            CategoryMarkup,
	protocol.KindText:           CategoryMarkup,
	protocol.KindCustom:         CategoryMarkup,
	protocol.KindFileContents:   CategoryMarkup,
	protocol.KindMeasure:        CategoryTiming,
	protocol.KindCarbon:         CategoryTiming,
	protocol.KindBool:           CategoryValue,
	protocol.KindNull:           CategoryValue,
	protocol.KindImage:          CategoryMedia,
	protocol.KindSeparator:      CategoryControl,
	protocol.KindLock:           CategoryControl,
	protocol.KindColor:          CategoryControl,
	protocol.KindLabel:          CategoryControl,
	protocol.KindSize:           CategoryControl,
	protocol.KindNewScreen:      CategoryControl,
	protocol.KindClearAll:       CategoryControl,
	protocol.KindHide:           CategoryControl,
	protocol.KindRemove:         CategoryControl,
	protocol.KindShowApp:        CategoryControl,
	protocol.KindHideApp:        CategoryControl,
	protocol.KindConfetti:       CategoryControl,
}

// CategoryOf returns the display category of k, CategoryDefault for kinds
// outside the vocabulary.
func CategoryOf(k protocol.Kind) Category {
	if c, ok := categories[k]; ok {
		return c
	}
	return CategoryDefault
}
