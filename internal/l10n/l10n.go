// Package l10n translates the messages of the envariability command.
package l10n

import (
	"fmt"

	"github.com/snapcore/go-gettext"
)

// Domain is the gettext text domain of the command's catalogs.
const Domain = "envariability"

var catalog gettext.Catalog

func init() {
	domain := gettext.TextDomain{Name: Domain}
	catalog = domain.UserLocale()
}

// T localizes str and formats it with vars, if any.
func T(str string, vars ...interface{}) string {
	translation := catalog.Gettext(str)
	if len(vars) > 0 {
		translation = fmt.Sprintf(translation, vars...)
	}
	return translation
}
