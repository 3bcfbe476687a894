package dashboard

// Response is the wire form of a dashboard variant.
type Response struct {
	Scope Scope `json:"scope"`
	Stats Stats `json:"stats"`
}

func NewResponse(s Stats) Response {
	return Response{Scope: s.Scope(), Stats: s}
}
