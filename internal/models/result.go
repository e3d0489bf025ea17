package models

// ResumeData is the parsed profile returned by the upload endpoint.
type ResumeData struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	College    string   `json:"college"`
	Degree     string   `json:"degree"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Education  string   `json:"education"`
}

type UploadResumeResponse struct {
	Success  bool        `json:"success"`
	Filename string      `json:"filename,omitempty"`
	Data     *ResumeData `json:"data,omitempty"`
	Error    string      `json:"error,omitempty"`
}

type SearchResumesRequest struct {
	JobDescription string `json:"job_description"`
	TopK           int    `json:"top_k"`
}

// ResumeMatch is one ranked entry of a search-resumes response.
// MatchScore is always inside [0,1]; the client renders score*100.
type ResumeMatch struct {
	Filename   string   `json:"filename"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Skills     []string `json:"skills"`
	MatchScore float64  `json:"match_score"`
	Preview    string   `json:"preview"`
}

type SearchResumesResponse struct {
	Success bool          `json:"success"`
	Matches []ResumeMatch `json:"matches"`
	Error   string        `json:"error,omitempty"`
}

type MatchJobsRequest struct {
	ResumeText string `json:"resume_text"`
}

type JobMatch struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    string  `json:"location"`
	MatchScore  float64 `json:"match_score"`
	Description string  `json:"description"`
}

type MatchJobsResponse struct {
	Success bool       `json:"success"`
	Jobs    []JobMatch `json:"jobs"`
	Error   string     `json:"error,omitempty"`
}

type AddJobRequest struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

type AddStudentRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	College string `json:"college"`
	Degree  string `json:"degree"`
	Year    string `json:"year"`
	Phone   string `json:"phone"`
}

type ContactAdminRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type AnalyzeResumeRequest struct {
	ResumeText string `json:"resume_text"`
}

// ResumeAnalysis summarizes structural properties of a resume text.
type ResumeAnalysis struct {
	WordCount     int      `json:"word_count"`
	HasContact    bool     `json:"has_contact"`
	SectionsFound []string `json:"sections_found"`
	Suggestions   []string `json:"suggestions"`
}

type UploadedFile struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}
