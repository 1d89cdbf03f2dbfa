package model

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateEventForm là phần scalar + repeated fields của multipart form.
// Image được đọc riêng qua c.FormFile("image").
// agenda và tags là repeated fields: agenda=...&agenda=...
type CreateEventForm struct {
	Title       string   `form:"title"`
	Description string   `form:"description"`
	Overview    string   `form:"overview"`
	Venue       string   `form:"venue"`
	Location    string   `form:"location"`
	Date        string   `form:"date"`
	Time        string   `form:"time"`
	Mode        string   `form:"mode"`
	Audience    string   `form:"audience"`
	Organizer   string   `form:"organizer"`
	Agenda      []string `form:"agenda"`
	Tags        []string `form:"tags"`
}

// ToEvent assemble Event candidate từ form và URL ảnh đã upload
func (f *CreateEventForm) ToEvent(imageURL string) Event {
	return Event{
		Title:       f.Title,
		Description: f.Description,
		Overview:    f.Overview,
		Image:       imageURL,
		Venue:       f.Venue,
		Location:    f.Location,
		Date:        f.Date,
		Time:        f.Time,
		Mode:        Mode(f.Mode),
		Audience:    f.Audience,
		Organizer:   f.Organizer,
		Agenda:      CleanList(f.Agenda),
		Tags:        CleanList(f.Tags),
	}
}

// ListEventsQuery cho GET /events
type ListEventsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=0"`
}

// SimilarEventsQuery cho GET /events/:slug/similar
type SimilarEventsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=20"`
}

// ImageUpload là file ảnh đã đọc vào memory
type ImageUpload struct {
	Filename string
	Data     []byte
}
