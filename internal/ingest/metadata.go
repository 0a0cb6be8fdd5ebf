package ingest

// CleanMetadata flattens decoded metadata into the string map the document
// store accepts. Nulls and the missing-data placeholder become "", lists are
// joined with ", ". The source_type key is set when absent.
func CleanMetadata(meta map[string]any, sourceType SourceType) map[string]string {
	cleaned := make(map[string]string, len(meta)+1)
	for k, v := range meta {
		s := formatValue(v)
		if s == missingValue {
			s = ""
		}
		cleaned[k] = s
	}
	if cleaned["source_type"] == "" {
		cleaned["source_type"] = string(sourceType)
	}
	return cleaned
}
