package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectCandidates_VisibleOnly(t *testing.T) {
	saved := []string{"Home", "Office", "Cafe"}
	visible := []string{"Office"}

	got := SelectCandidates(ModeVisibleOnly, nil, saved, visible)
	assert.Equal(t, []string{"Office"}, got)
}

func TestSelectCandidates_VisibleOnlyPreservesSavedOrder(t *testing.T) {
	saved := []string{"Cafe", "Home", "Office"}
	visible := []string{"Office", "Home"}

	got := SelectCandidates(ModeVisibleOnly, nil, saved, visible)
	assert.Equal(t, []string{"Home", "Office"}, got)
}

func TestSelectCandidates_VisibleOnlyNothingInRange(t *testing.T) {
	got := SelectCandidates(ModeVisibleOnly, nil, []string{"Home", "Office"}, nil)
	assert.Empty(t, got)
}

func TestSelectCandidates_All(t *testing.T) {
	saved := []string{"Home", "Office", "Cafe"}

	got := SelectCandidates(ModeAll, nil, saved, nil)
	assert.Equal(t, saved, got)
}

func TestSelectCandidates_ExplicitIntersectsSaved(t *testing.T) {
	saved := []string{"Home", "Office", "Cafe"}
	explicit := []string{"Cafe", "Nonexistent", "Home"}

	// Unknown names are silently dropped; saved order wins.
	got := SelectCandidates(ModeExplicit, explicit, saved, nil)
	assert.Equal(t, []string{"Home", "Cafe"}, got)
}

func TestSelectCandidates_ExplicitIsCaseSensitive(t *testing.T) {
	got := SelectCandidates(ModeExplicit, []string{"home"}, []string{"Home"}, nil)
	assert.Empty(t, got)
}

func TestSelectCandidates_DropsDuplicatesAndEmptyNames(t *testing.T) {
	saved := []string{"Home", "", "Home", "Office"}

	got := SelectCandidates(ModeAll, nil, saved, nil)
	assert.Equal(t, []string{"Home", "Office"}, got)
}
