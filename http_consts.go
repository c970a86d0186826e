// Copyright (c) 2021 LabStack, see https://github.com/labstack/echo/blob/master/LICENSE.
// Portions of this code were derived from the Echo project (https://github.com/labstack/echo)
// under the MIT License.

package redirects

// MIME types
const (
	charsetUTF8                    = "charset=utf-8"
	MIMEApplicationJSON            = "application/json"
	MIMEApplicationJSONCharsetUTF8 = MIMEApplicationJSON + "; " + charsetUTF8
)

// Headers
const (
	HeaderAllow           = "Allow"
	HeaderAuthorization   = "Authorization"
	HeaderContentType     = "Content-Type"
	HeaderLocation        = "Location"
	HeaderWWWAuthenticate = "WWW-Authenticate"
	HeaderXForwardedFor   = "X-Forwarded-For"
	HeaderXRealIP         = "X-Real-Ip"
)
