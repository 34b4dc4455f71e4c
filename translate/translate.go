// Package translate renders user visible messages through a locale aware
// printer.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// Fallback is the locale used when the host reports none.
const Fallback = "en-US"

var printer = newPrinter()

func newPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("i8086: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{Fallback}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
