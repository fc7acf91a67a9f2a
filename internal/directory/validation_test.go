package directory

import (
	"strings"
	"testing"
)

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		username string
		want     bool
	}{
		{"mgarcia", true},
		{"j.doe-2", true},
		{"tech_01", true},
		{"", false},
		{"has spaces", false},
		{strings.Repeat("a", 65), false},
	}

	for _, tt := range tests {
		if got := IsValidUsername(tt.username); got != tt.want {
			t.Errorf("IsValidUsername(%q) = %v, want %v", tt.username, got, tt.want)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	for _, r := range AllRoles() {
		if !IsValidRole(r) {
			t.Errorf("IsValidRole(%q) = false, want true", r)
		}
	}
	if IsValidRole(Role("janitor")) {
		t.Error("IsValidRole(janitor) = true, want false")
	}
}

func TestIsValidBuildingType(t *testing.T) {
	for _, bt := range AllBuildingTypes() {
		if !IsValidBuildingType(bt) {
			t.Errorf("IsValidBuildingType(%q) = false, want true", bt)
		}
	}
	if IsValidBuildingType(BuildingType("stadium")) {
		t.Error("IsValidBuildingType(stadium) = true, want false")
	}
}
