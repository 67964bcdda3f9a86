package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"securebank/internal/models"
)

func demoContacts() []models.Contact {
	return []models.Contact{
		{Name: "Alice Johnson", AccountNumber: "ACC9876543210"},
		{Name: "Bob Smith", AccountNumber: "ACC5432109876"},
		{Name: "Carol Williams", AccountNumber: "ACC1357924680"},
		{Name: "David Brown", AccountNumber: "ACC2468013579"},
	}
}

func TestSuggestContactsPrefixFirst(t *testing.T) {
	t.Parallel()

	got := SuggestContacts("ali", demoContacts(), 2)
	require.Len(t, got, 2)
	require.Equal(t, "Alice Johnson", got[0].Name)
}

func TestSuggestContactsSubstring(t *testing.T) {
	t.Parallel()

	got := SuggestContacts("smith", demoContacts(), 1)
	require.Len(t, got, 1)
	require.Equal(t, "Bob Smith", got[0].Name)
}

func TestSuggestContactsTypo(t *testing.T) {
	t.Parallel()

	// near match by edit distance still surfaces the intended contact
	got := SuggestContacts("alice jonson", demoContacts(), 1)
	require.Len(t, got, 1)
	require.Equal(t, "Alice Johnson", got[0].Name)
}

func TestSuggestContactsEmptyQuery(t *testing.T) {
	t.Parallel()

	got := SuggestContacts("", demoContacts(), 3)
	require.Len(t, got, 3)
	require.Equal(t, "Alice Johnson", got[0].Name)
}

func TestSuggestContactsLimitClamped(t *testing.T) {
	t.Parallel()

	got := SuggestContacts("a", demoContacts(), 100)
	require.Len(t, got, 4)

	got = SuggestContacts("a", nil, 3)
	require.Empty(t, got)
}
