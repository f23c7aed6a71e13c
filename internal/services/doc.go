// Package services defines the [Service] interface for the video platform and implements it for the YouTube Data API v3.
//
// # Service Interface
//
// The pipeline consumes five operations: resolve the uploads collection,
// page through it by continuation token, batch-fetch video metadata, create
// a playlist, and insert one video into a playlist. Anything implementing
// [Service] can back the engine, which is how the tests substitute fakes.
//
// # YouTube Implementation
//
// [YouTubeService] wraps the generated google.golang.org/api/youtube/v3
// client. Construction takes an authorized *http.Client produced by the
// credential store, so token refresh happens transparently inside the
// oauth2 transport.
//
// Every call first waits on a client-side [rate.Limiter]; the API's own
// quota is the real bound, the limiter just keeps a long sequential run
// from bursting into it.
//
// # Error Handling
//
// Remote failures wrap [shared.ErrAPIRequest] and are treated as fatal for
// the current pipeline run. [shared.ErrChannelNotFound] covers the case of
// an authenticated user without a channel.
package services
