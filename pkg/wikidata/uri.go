package wikidata

import "strings"

// EntityBaseURI is the concept URI prefix used by Wikidata.
const EntityBaseURI = "http://www.wikidata.org/entity/"

// EntityIDFromURI returns the final path segment of uri.
func EntityIDFromURI(uri string) string {
	uri = strings.TrimSuffix(uri, "/")
	if idx := strings.LastIndex(uri, "/"); idx != -1 {
		return uri[idx+1:]
	}
	return uri
}

// EntityURI returns the concept URI of id.
func EntityURI(id string) string {
	return EntityBaseURI + id
}
