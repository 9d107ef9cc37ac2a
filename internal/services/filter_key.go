package services

import (
	"crypto/sha256"
	"encoding/hex"
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// FilterKey identifies an effective filter value set. Two filter records
// that differ only in which optional fields are explicitly null produce
// the same key, so all users running the same search share a cache entry.
type FilterKey string

func DeriveFilterKey(filters models.SearchFilters) FilterKey {

	// free-text values are escaped so a value carrying "=" or ";" can't
	// read as extra fields and collide with a genuinely different set
	var parts []string
	add := func(field, value string) {
		parts = append(parts, field+"="+url.QueryEscape(value))
	}

	if filters.Position != nil {
		add("position", *filters.Position)
	}
	if filters.City != nil {
		add("city", *filters.City)
	}
	if filters.SalaryFrom != nil {
		add("salary_from", strconv.Itoa(*filters.SalaryFrom))
	}
	if filters.Remote != nil {
		add("remote", strconv.FormatBool(*filters.Remote))
	}
	if filters.Metro != nil {
		add("metro", *filters.Metro)
	}
	if filters.FreshnessDays != nil {
		add("freshness_days", strconv.Itoa(*filters.FreshnessDays))
	}
	if filters.Employment != nil {
		add("employment", string(*filters.Employment))
	}
	if filters.Experience != nil {
		add("experience", string(*filters.Experience))
	}
	if filters.OnlyDirectEmployers != nil {
		add("only_direct_employers", strconv.FormatBool(*filters.OnlyDirectEmployers))
	}

	sort.Strings(parts)
	hash := sha256.Sum256([]byte(strings.Join(parts, ";")))
	return FilterKey(hex.EncodeToString(hash[:]))
}
