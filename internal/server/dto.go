package server

import (
	"github.com/abhisek/quizdesk/internal/taxonomy"
	"github.com/abhisek/quizdesk/internal/wizard"
)

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type SessionResponse struct {
	ID   string      `json:"id"`
	View wizard.View `json:"view"`
}

type AdvanceRequest struct {
	Value string `json:"value"`
}

type PlaceRequest struct {
	Slot int `json:"slot" binding:"required,min=1,max=3"`
}

type DraftRequest struct {
	Questions    [wizard.NumSlots]string `json:"questions"`
	ImageURLs    [wizard.NumSlots]string `json:"image_urls"`
	ActivityCode string                  `json:"activity_code"`
	TeacherEmail string                  `json:"teacher_email"`
}

type SubmitResponse struct {
	Status string `json:"status"`
}

// GradeDTO and its children render the taxonomy as ordered lists; a JSON
// object would lose the file order.
type GradeDTO struct {
	Grade    string       `json:"grade"`
	Subjects []SubjectDTO `json:"subjects"`
}

type SubjectDTO struct {
	Subject    string        `json:"subject"`
	Categories []CategoryDTO `json:"categories"`
}

type CategoryDTO struct {
	Category  string   `json:"category"`
	Standards []string `json:"standards"`
}

func toGradeDTOs(tax *taxonomy.Taxonomy) []GradeDTO {
	grades := tax.Tree()
	out := make([]GradeDTO, 0, len(grades))
	for _, g := range grades {
		gd := GradeDTO{Grade: g.Name, Subjects: make([]SubjectDTO, 0, len(g.Subjects))}
		for _, s := range g.Subjects {
			sd := SubjectDTO{Subject: s.Name, Categories: make([]CategoryDTO, 0, len(s.Categories))}
			for _, c := range s.Categories {
				sd.Categories = append(sd.Categories, CategoryDTO{Category: c.Name, Standards: c.Standards})
			}
			gd.Subjects = append(gd.Subjects, sd)
		}
		out = append(out, gd)
	}
	return out
}
