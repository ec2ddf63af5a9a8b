package output

// Diagnostic is the JSON form of a syntax or lexer error.
type Diagnostic struct {
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Offset   int      `json:"offset"`
	Expected []string `json:"expected,omitempty"`
	Found    string   `json:"found,omitempty"`
	Message  string   `json:"message"`
}

// FileResult is the JSON form of one checked file.
type FileResult struct {
	Path        string       `json:"path"`
	Statements  int          `json:"statements"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	Error       string       `json:"error,omitempty"`
}

// CheckSummary totals a check run.
type CheckSummary struct {
	Files       int `json:"files"`
	FilesFailed int `json:"files_failed"`
	Errors      int `json:"errors"`
}

// CheckOutput is the JSON document written by the check command.
type CheckOutput struct {
	Summary CheckSummary `json:"summary"`
	Files   []FileResult `json:"files"`
}

// TokenRow is the JSON form of one lexed token.
type TokenRow struct {
	Kind   string `json:"kind"`
	Lexeme string `json:"lexeme"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// TokensOutput is the JSON document written by the tokens command.
type TokensOutput struct {
	Tokens []TokenRow   `json:"tokens"`
	Errors []Diagnostic `json:"errors,omitempty"`
}
