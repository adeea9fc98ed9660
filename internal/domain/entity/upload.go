package entity

// TransientUpload is a received file parked on local disk for the duration of one request.
type TransientUpload struct {
	Filename     string // Generated, collision-free name on disk.
	OriginalName string // Name the client sent; recorded in history.
	Path         string
	Size         int64
	RequestID    string
}
