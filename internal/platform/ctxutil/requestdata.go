package ctxutil

import "context"

type requestDataKey struct{}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// RequestData is the authenticated principal of a request.
type RequestData struct {
	TokenString string
	SubjectID   uint
	Role        string
}

func (rd *RequestData) IsAdmin() bool {
	return rd != nil && rd.Role == RoleAdmin
}

func (rd *RequestData) IsUser() bool {
	return rd != nil && rd.Role == RoleUser && rd.SubjectID != 0
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(Default(ctx), requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}
