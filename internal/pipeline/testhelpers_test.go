package pipeline

func strPtr(s string) *string { return &s }
