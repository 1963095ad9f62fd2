// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package models

// OAuthCredentials is an opaque OAuth bundle handed through to the mail
// transport; this layer never inspects or validates its contents
type OAuthCredentials struct {
	ClientID     string
	ClientSecret string
	AccessToken  string
	RefreshToken string
}
