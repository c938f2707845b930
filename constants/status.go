package constants

// JobStatus is the canonical status for rows in vob_extract_job.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusRunning   JobStatus = "RUNNING"    // in progress
	JobStatusExtractOK JobStatus = "EXTRACT_OK" // stage 1 completed (text views built)
	JobStatusParseOK   JobStatus = "PARSE_OK"   // stage 2 completed (fields extracted)
	JobStatusFailed    JobStatus = "FAILED"     // terminal failure
)

// ExtractionMethod records which extractor produced the final record.
type ExtractionMethod string

const (
	MethodHeuristic ExtractionMethod = "heuristic"
	MethodGemini    ExtractionMethod = "gemini"
)
