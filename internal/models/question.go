package models

// Question is a single multiple-choice item. Options are positional: the
// entry at CorrectIndex is the right answer, so option order must survive
// from the question bank to the client untouched.
type Question struct {
	Text         string   `json:"question" validate:"required"`
	Options      []string `json:"options" validate:"len=4"`
	CorrectIndex int      `json:"correctIndex" validate:"gte=0,lte=3"`
}
