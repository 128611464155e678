package assets

import "testing"

// A load against a directory with no sprite files must finish with an
// error rather than block or succeed: the scene treats the failure as
// non-fatal and keeps rendering with shape placeholders, so the loader
// has to report "done but not ready".
func TestLoadMissingSprites(t *testing.T) {
	l := &Loader{done: make(chan struct{}), started: true}
	l.load(t.TempDir())
	<-l.done

	if l.Ready() {
		t.Error("Ready() = true after a failed load")
	}
	if l.Err() == nil {
		t.Error("Err() = nil after a failed load")
	}
	if _, ok := l.Texture("fish"); ok {
		t.Error("Texture(\"fish\") hit after a failed load")
	}

	// Upload must stay a no-op so nothing touches the GPU without images.
	l.EnsureUploaded()
	if l.uploaded {
		t.Error("EnsureUploaded marked uploaded after a failed load")
	}

	l.Unload()
	l.Unload()
}

func TestPreloadSharesOneLoader(t *testing.T) {
	a := Preload(t.TempDir())
	b := Preload(t.TempDir())
	if a != b {
		t.Error("Preload returned distinct loaders")
	}

	<-a.done
	if a.Ready() {
		t.Error("Ready() = true with no sprite files present")
	}
}
