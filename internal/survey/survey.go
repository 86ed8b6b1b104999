package survey

// Survey is an ordered question sequence plus the few top-level settings
// the flow engine cares about.
//
// Once published a survey is immutable for the duration of every
// respondent session; the engine treats it as a read-only snapshot.
type Survey struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Anonymous bool       `json:"anonymous,omitempty" yaml:"anonymous,omitempty"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// IndexOf returns the position of a question id in the sequence,
// or -1 if the id does not exist.
func (s *Survey) IndexOf(id string) int {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return i
		}
	}
	return -1
}

// ByID returns the question with the given id, or nil if absent.
func (s *Survey) ByID(id string) *Question {
	if i := s.IndexOf(id); i >= 0 {
		return &s.Questions[i]
	}
	return nil
}
