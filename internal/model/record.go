package model

// Row is one scraped lifecycle table row before any normalization.
// Date fields hold the raw display text, which may be empty.
type Row struct {
	Model    string `json:"model"`
	EOLDate  string `json:"eol_date"`
	EOSLDate string `json:"eosl_date"`
}

// VendorRow ties a scraped row to the vendor section it came from.
// The vendor is the lowercase URL slug at this stage.
type VendorRow struct {
	Vendor string `json:"vendor"`
	Row
}

// Record is the consolidated lifecycle entity: vendor uppercased, dates
// normalized to UTC ISO-8601 or nil, exactly one per (vendor, model).
type Record struct {
	Vendor   string  `json:"vendor"`
	Model    string  `json:"model"`
	EOLDate  *string `json:"eol_date"`
	EOSLDate *string `json:"eosl_date"`
}
