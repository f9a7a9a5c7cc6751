package contract

const MaxNoteContentLength = 100_000

type NoteResponse struct {
	ID        int64    `json:"id,string"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

type NoteRequest struct {
	Title   string   `json:"title" validate:"required,min=1,max=200"`
	Content string   `json:"content" validate:"max=100000"`
	Tags    []string `json:"tags" validate:"max=20,nodupes,dive,required,max=30,nospaces"`
}

type UpdateNoteRequest struct {
	Title   *string  `json:"title" validate:"omitnil,min=1,max=200"`
	Content *string  `json:"content" validate:"omitnil,max=100000"`
	Tags    []string `json:"tags" validate:"omitnil,max=20,nodupes,dive,required,max=30,nospaces"`
}
