// Package translate renders the PMP model's error and diagnostic messages
// for the host locale. Message keys are en-US fmt formats.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// fallback is used when the host reports no usable locale.
var fallback = language.AmericanEnglish

var printer = newPrinter()

func newPrinter() *message.Printer {
	tag := fallback

	locales, err := locale.GetLocales()
	switch {
	case err != nil:
		log.Printf("rvpmp: translate: %v", err)
	case len(locales) > 0:
		tag = message.MatchLanguage(locales...)
	}

	return message.NewPrinter(tag)
}

// From formats a message key, such as a sentinel error text or a register
// name, with the host-locale printer. Keys without a catalog entry format
// as plain en-US.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
