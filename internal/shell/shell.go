// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell resolves shell symbols (S, P, D, ..., SP, L<N>) to their
// angular momentum codes.
package shell

import (
	"strconv"
	"strings"

	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

// letters lists the named shells in code order. J is skipped by convention.
const letters = "SPDFGHIKLMNOQRTUVWXYZ"

var symbols = buildSymbols()

func buildSymbols() map[string]types.ShellCode {
	m := make(map[string]types.ShellCode, len(letters)+1)
	for i, r := range letters {
		m[string(r)] = types.ShellCode(i)
	}
	m["SP"] = types.SP
	return m
}

// Resolve returns the angular momentum code of symbol, or types.NotFound
// when symbol is not a shell. Letters are case-insensitive; the extended
// form is an upper-case L followed by digits.
func Resolve(symbol string) types.ShellCode {
	if symbol == "" {
		return types.NotFound
	}
	if code, ok := symbols[strings.ToUpper(symbol)]; ok {
		return code
	}
	if len(symbol) > 1 && symbol[0] == 'L' && isDigits(symbol[1:]) {
		n, err := strconv.Atoi(symbol[1:])
		if err != nil {
			return types.NotFound
		}
		return types.ShellCode(n)
	}
	return types.NotFound
}

// Symbol returns the canonical letter for a code, or "L<N>" beyond Z.
func Symbol(code types.ShellCode) string {
	switch {
	case code == types.SP:
		return "SP"
	case code >= 0 && code <= types.MaxLetter:
		return string(letters[code])
	case code > types.MaxLetter:
		return "L" + strconv.Itoa(int(code))
	default:
		return ""
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
