package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ClientOptions picks the service account source: inline JSON wins over a
// file path, and with neither the ambient credentials are used.
func ClientOptions(credentialsJSON, credentialsPath string) []option.ClientOption {
	switch {
	case credentialsJSON != "":
		return []option.ClientOption{option.WithCredentialsJSON([]byte(credentialsJSON))}
	case credentialsPath != "":
		return []option.ClientOption{option.WithCredentialsFile(credentialsPath)}
	}
	return nil
}

// FirebaseAuthClient verifies Firebase ID tokens sent by the web client.
type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(ctx context.Context, projectID string, opts ...option.ClientOption) (*FirebaseAuthClient, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase auth: %w", err)
	}

	return &FirebaseAuthClient{
		client: client,
	}, nil
}

// VerifyToken returns the uid the ID token was issued to.
func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}
