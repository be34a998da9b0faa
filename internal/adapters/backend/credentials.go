package backend

import (
	"context"
	"net/http"
)

// Cookie is one backend credential cookie kept in the session
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Credentials are the cookies the backend issued at login
type Credentials []Cookie

// CredentialsFromCookies keeps the name and value of each response cookie
func CredentialsFromCookies(cookies []*http.Cookie) Credentials {
	creds := make(Credentials, 0, len(cookies))
	for _, c := range cookies {
		if c.Value == "" || c.MaxAge < 0 {
			continue
		}
		creds = append(creds, Cookie{Name: c.Name, Value: c.Value})
	}
	return creds
}

type credentialsKey struct{}

// WithCredentials attaches credentials to ctx for every call made with it
func WithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

// CredentialsFrom returns the credentials attached to ctx, if any
func CredentialsFrom(ctx context.Context) Credentials {
	creds, _ := ctx.Value(credentialsKey{}).(Credentials)
	return creds
}
