package vtn

import "context"

// AuthServerInfo is the response of the authentication discovery endpoint
// of a VTN.
type AuthServerInfo struct {
	// TokenURL is the OAuth token endpoint serving the client credentials
	// grant for this VTN.
	TokenURL string `json:"tokenURL"`
}

// AuthServer asks the VTN for its OAuth token endpoint. The endpoint is
// unauthenticated, so it also works on a client built without a token
// provider.
func (c *Client) AuthServer(ctx context.Context) (AuthServerInfo, error) {
	var info AuthServerInfo
	if err := c.get(ctx, "auth/server", nil, &info); err != nil {
		return AuthServerInfo{}, err
	}
	return info, nil
}
