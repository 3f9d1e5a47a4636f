package store

// ListOptions bounds a list query. A zero Limit returns every row.
type ListOptions struct {
	Limit  int
	Offset int
}

// UserFilter narrows user listings. Search matches name, surname, nickname and
// email as a case-insensitive substring, or only the nickname when
// NickNameOnly is set.
type UserFilter struct {
	Search       string
	NickNameOnly bool
	ListOptions
}

// ProgramFilter narrows program listings by a case-insensitive name substring.
type ProgramFilter struct {
	Search string
	ListOptions
}

// ExerciseFilter narrows exercise listings. A zero ProgramID matches every
// exercise; otherwise only exercises with an active link to that program match.
type ExerciseFilter struct {
	ProgramID int64
	Search    string
	ListOptions
}
