package taxonomy

// Taxonomy is the achievement-standard tree: grade → subject → category →
// standards. Children keep the order in which they appear in the source file.
type Taxonomy struct {
	grades  []Grade
	byGrade map[string]*Grade
}

// Grade is a school year, e.g. "3학년".
type Grade struct {
	Name     string
	Subjects []Subject
}

// Subject is a school subject within a grade, e.g. "수학".
type Subject struct {
	Name       string
	Categories []Category
}

// Category groups related standards within a subject, e.g. "수와 연산".
type Category struct {
	Name      string
	Standards []string
}

// Counts summarizes the size of a taxonomy.
type Counts struct {
	Grades     int
	Subjects   int
	Categories int
	Standards  int
}

// New builds a Taxonomy from an already-ordered grade list.
func New(grades []Grade) *Taxonomy {
	t := &Taxonomy{
		grades:  grades,
		byGrade: make(map[string]*Grade, len(grades)),
	}
	for i := range t.grades {
		t.byGrade[t.grades[i].Name] = &t.grades[i]
	}
	return t
}

// Grades returns the grade names. A nil taxonomy has no grades.
func (t *Taxonomy) Grades() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.grades))
	for i, g := range t.grades {
		out[i] = g.Name
	}
	return out
}

// Subjects returns the subjects of a grade, or nil if the grade is unknown.
func (t *Taxonomy) Subjects(grade string) []string {
	g := t.grade(grade)
	if g == nil {
		return nil
	}
	out := make([]string, len(g.Subjects))
	for i, s := range g.Subjects {
		out[i] = s.Name
	}
	return out
}

// Categories returns the categories of a subject, or nil if either key is unknown.
func (t *Taxonomy) Categories(grade, subject string) []string {
	s := t.subject(grade, subject)
	if s == nil {
		return nil
	}
	out := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		out[i] = c.Name
	}
	return out
}

// Standards returns the standards of a category, or nil if any key is unknown.
func (t *Taxonomy) Standards(grade, subject, category string) []string {
	s := t.subject(grade, subject)
	if s == nil {
		return nil
	}
	for _, c := range s.Categories {
		if c.Name == category {
			out := make([]string, len(c.Standards))
			copy(out, c.Standards)
			return out
		}
	}
	return nil
}

// Tree returns the full grade list. Callers must not mutate it.
func (t *Taxonomy) Tree() []Grade {
	if t == nil {
		return nil
	}
	return t.grades
}

// Count reports how many nodes of each level the taxonomy holds.
func (t *Taxonomy) Count() Counts {
	var c Counts
	if t == nil {
		return c
	}
	for _, g := range t.grades {
		c.Grades++
		for _, s := range g.Subjects {
			c.Subjects++
			for _, cat := range s.Categories {
				c.Categories++
				c.Standards += len(cat.Standards)
			}
		}
	}
	return c
}

func (t *Taxonomy) grade(name string) *Grade {
	if t == nil {
		return nil
	}
	return t.byGrade[name]
}

func (t *Taxonomy) subject(grade, subject string) *Subject {
	g := t.grade(grade)
	if g == nil {
		return nil
	}
	for i := range g.Subjects {
		if g.Subjects[i].Name == subject {
			return &g.Subjects[i]
		}
	}
	return nil
}
