// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

/*
Package websocket implements the streaming side of the Castmatch API.

A client sends JSON frames and receives JSON frames:

	-> {"type":"recommend","id":"1","data":{"query":"walking","session_id":"..."}}
	<- {"type":"recommendation","id":"1","data":{...}}

	-> {"type":"ping","id":"2"}
	<- {"type":"pong","id":"2"}

Failures come back as {"type":"error","id":...,"data":{"code":...,"message":...}}.
Recommend frames are rate limited per connection with a token bucket
(golang.org/x/time/rate). Frames over the limit get RATE_LIMIT_EXCEEDED and
are not processed.

A client is bound to a session by the session_id query parameter on the
upgrade request, or by the first recommend frame that names one. The Hub
then delivers that session's events (for example, session_updated after
feedback is applied over HTTP) to every bound client.

Each client runs a read pump and a write pump. All writes go through the
write pump, which also sends keepalive pings.
*/
package websocket
