// Package translate localizes alert content for delivery.
//
// Lookup order is a manual catalog first (exact match, then
// case-insensitive), then an optional remote provider. Translation is
// strictly best-effort: any failure falls back silently to the source text
// so a broken translation backend can never block an emergency delivery.
//
// Catalogs are loaded through the CatalogAdapter interface; JSON and YAML
// file adapters and an in-memory map adapter are provided.
package translate
