package repository

import "github.com/eslsoft/readflow/pkg/filterexpr"

var listStudyWordsSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"word": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpSW: "WordPrefix"},
		},
		"query_count": {
			Kind: filterexpr.KindNumber,
			Ops:  map[filterexpr.Op]string{filterexpr.OpGTE: "QueryCountGTE"},
		},
		"created_at": {
			Kind: filterexpr.KindTimestamp,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpGTE: "CreatedAtGTE",
				filterexpr.OpLTE: "CreatedAtLTE",
			},
		},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary:     "updated_at",
		DefaultPrimaryDesc: true,
		FallbackKey:        "id",
		FallbackDesc:       false,
		Fields: map[string]filterexpr.OrderField{
			"word":        {Expr: "word", Nulls: "last"},
			"query_count": {Expr: "query_count", Nulls: "last"},
			"created_at":  {Expr: "created_at", Nulls: "last"},
			"updated_at":  {Expr: "updated_at", Nulls: "last"},
			"id":          {Expr: "id", Nulls: "last"},
		},
	},
}

var listStudyPhrasesSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"text": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpSW: "TextPrefix"},
		},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary:     "updated_at",
		DefaultPrimaryDesc: true,
		FallbackKey:        "id",
		FallbackDesc:       false,
		Fields: map[string]filterexpr.OrderField{
			"updated_at": {Expr: "updated_at", Nulls: "last"},
			"id":         {Expr: "id", Nulls: "last"},
		},
	},
}
