package main

import (
	"testing"

	"sufra/utils"
)

func TestCreatePagination(t *testing.T) {
	p := utils.CreatePagination(25, 2, 10)
	if p.TotalPages != 3 || p.CurrentPage != 2 || p.PageSize != 10 || p.TotalItems != 25 {
		t.Fatalf("unexpected pagination: %+v", p)
	}

	// Defaults kick in for nonsense inputs.
	p = utils.CreatePagination(5, 0, -1)
	if p.CurrentPage != 1 || p.PageSize != 10 || p.TotalPages != 1 {
		t.Fatalf("unexpected defaulted pagination: %+v", p)
	}
}
