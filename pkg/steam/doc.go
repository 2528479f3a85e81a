// Package steam consumes the Steam store review listing endpoint.
//
// The endpoint is cursor-paginated: each response carries an opaque cursor
// naming the position of the next page, and a page with zero reviews marks
// the end of the listing. Pages must be requested strictly sequentially
// because each cursor is only learned from the previous response.
//
// Two layers are provided:
//
//   - Client: one HTTP GET per page, envelope decoding and validation
//   - Stream: sequential iteration with a one-slot prefetch, so the request
//     for page N+1 is already in flight while the caller processes page N
//
// Example usage:
//
//	client, err := steam.NewClient(steam.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	stream := steam.NewStream(ctx, client, 1382330, steam.DateCreated)
//	for {
//		page, err := stream.Next(ctx)
//		if err != nil {
//			return err
//		}
//		if len(page.Reviews) == 0 {
//			break
//		}
//		// consume page.Reviews
//	}
//
// Failures are never retried: a non-2xx status yields a *RequestError and a
// malformed or unsuccessful envelope yields a *ProtocolError, both treated
// as fatal by the ingestion pipeline.
package steam
