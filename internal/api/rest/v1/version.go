package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BasePath is the mount point of the administrative API.
const BasePath = "/api/v1"

// ClientProtocolVersion is handshaked by the CLI before it sends any
// credentials. Client and server must agree exactly.
const ClientProtocolVersion = "0.4.1"

// VersionHandler reports the client protocol version. The route is
// unauthenticated so clients can handshake first.
func VersionHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, VersionResponse{Version: ClientProtocolVersion})
}
