package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Boundary normalization of free-text labels. The accepted synonym sets are
// closed: anything outside them is rejected here, never inside the engine.

var (
	ErrUnknownGroup    = errors.New("unknown group label")
	ErrUnknownContract = errors.New("unknown contract label")
)

var polishFolder = strings.NewReplacer(
	"ą", "a", "ć", "c", "ę", "e", "ł", "l", "ń", "n",
	"ó", "o", "ś", "s", "ź", "z", "ż", "z",
)

func foldLabel(raw string) string {
	return polishFolder.Replace(strings.ToLower(strings.TrimSpace(raw)))
}

// NormalizeGroup maps a free-text group label to its canonical Group.
// Matching is case- and accent-insensitive.
func NormalizeGroup(raw string) (Group, error) {
	switch foldLabel(raw) {
	case "elektroradiolog", "elektroradiolodzy", "er", "radiographer":
		return GroupRadiographer, nil
	case "pielegniarka", "pielegniarki", "piel", "zdo", "nurse":
		return GroupNurse, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGroup, raw)
}

// NormalizeContract maps a free-text contract label to its canonical Contract.
func NormalizeContract(raw string) (Contract, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch s {
	case "UOP", "UMOWA O PRACE", "UMOWAOPRACE", "EMPLOYMENT":
		return ContractEmployment, nil
	case "B2B", "KONTRAKT":
		return ContractB2B, nil
	case "ZLECENIE", "UMOWA ZLECENIE", "UZ", "MANDATE":
		return ContractMandate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownContract, raw)
}

// ParseBool interprets the boolean spellings that appear in the workbook
// cells. Unrecognized values are false.
func ParseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "tak", "t", "true", "1", "x", "yes", "y":
		return true
	}
	return false
}
