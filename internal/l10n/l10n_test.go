package l10n

import "testing"

func TestUntranslatedMessages(t *testing.T) {
	if got := T("resolve %s", "schema.toml"); got != "resolve schema.toml" {
		t.Errorf("T() = %q", got)
	}
	if got := T("no arguments"); got != "no arguments" {
		t.Errorf("T() = %q", got)
	}
}
