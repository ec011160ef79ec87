package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const CatalogProductSchemaTextV1 = `{
	"type": "record",
	"namespace": "catalog",
	"name": "product",
	"fields": [
		{"name": "id", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "brand", "type": "string"},
		{"name": "product_type", "type": "string"},
		{"name": "category", "type": "string"},
		{"name": "image_link", "type": "string"},
		{"name": "price", "type": ["null", "double"], "default": null},
		{"name": "rating", "type": ["null", "double"], "default": null}
	]
}`

const SearchEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "catalog",
	"name": "search_event",
	"fields": [
		{"name": "name", "type": "string"},
		{"name": "brand", "type": "string"},
		{"name": "product_type", "type": "string"},
		{"name": "fold_name", "type": "boolean"},
		{"name": "sort", "type": "string"},
		{"name": "results", "type": "int"},
		{"name": "at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type (
	CatalogProductV1 struct {
		ID          string   `avro:"id"`
		Name        string   `avro:"name"`
		Brand       string   `avro:"brand"`
		ProductType string   `avro:"product_type"`
		Category    string   `avro:"category"`
		ImageLink   string   `avro:"image_link"`
		Price       *float64 `avro:"price"`
		Rating      *float64 `avro:"rating"`
	}

	SearchEventV1 struct {
		Name        string    `avro:"name"`
		Brand       string    `avro:"brand"`
		ProductType string    `avro:"product_type"`
		FoldName    bool      `avro:"fold_name"`
		Sort        string    `avro:"sort"`
		Results     int       `avro:"results"`
		At          time.Time `avro:"at"`
	}
)

func CatalogProductV1Avro() avro.Schema {
	return avro.MustParse(CatalogProductSchemaTextV1)
}

func SearchEventV1Avro() avro.Schema {
	return avro.MustParse(SearchEventSchemaTextV1)
}
