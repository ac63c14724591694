package dto

type DashboardResponse struct {
	Procedures          map[string]int64             `json:"procedures"`
	BlogPosts           map[string]int64             `json:"blog_posts"`
	FAQs                int64                        `json:"faqs"`
	AppointmentRequests map[string]int64             `json:"appointment_requests"`
	RecentRequests      []AppointmentRequestResponse `json:"recent_requests"`
}
