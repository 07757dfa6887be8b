package gles

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		cmd  CommandType
		want string
	}{
		{CmdBeginPass, "BeginPass"},
		{CmdSetPipeline, "SetPipeline"},
		{CmdSetVertexBuffer, "SetVertexBuffer"},
		{CmdDraw, "Draw"},
		{CmdDrawIndexed, "DrawIndexed"},
		{CmdEndPass, "EndPass"},
		{CommandType(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("CommandType(%d).String() = %q, want %q", tt.cmd, got, tt.want)
		}
	}
}

func TestRecordingEncoderDefersExecution(t *testing.T) {
	d, gl := newTestDevice(t)
	pipeline := newTestPipeline(t, d, nil)
	view := d.SurfaceTexture().CreateView()

	gl.Reset()
	enc := d.CreateRecordingEncoder()
	pass, err := enc.BeginRenderPass(clearPass(view))
	if err != nil {
		t.Fatalf("BeginRenderPass: %v", err)
	}
	if err := pass.SetPipeline(pipeline); err != nil {
		t.Fatalf("SetPipeline: %v", err)
	}
	if err := pass.Draw(3, 1, 0, 0); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	pass.End()
	cb, err := enc.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	if calls := gl.Calls(); len(calls) != 0 {
		t.Fatalf("recording issued GL calls before submit: %v", calls)
	}
	if cb.Len() != 4 {
		t.Errorf("recorded commands = %d, want 4", cb.Len())
	}
}

func TestRecordingReplayMatchesImmediate(t *testing.T) {
	d, gl := newTestDevice(t)
	pipeline := newTestPipeline(t, d, twoAttrDescriptor())
	buf, err := d.CreateBuffer(256, gputypes.BufferUsageVertex)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	view := d.SurfaceTexture().CreateView()

	runImmediate := func() {
		enc := d.CreateCommandEncoder()
		pass, err := enc.BeginRenderPass(clearPass(view))
		if err != nil {
			t.Fatalf("BeginRenderPass: %v", err)
		}
		if err := pass.SetPipeline(pipeline); err != nil {
			t.Fatalf("SetPipeline: %v", err)
		}
		if err := pass.SetVertexBuffer(0, buf, 16); err != nil {
			t.Fatalf("SetVertexBuffer: %v", err)
		}
		if err := pass.Draw(3, 1, 0, 0); err != nil {
			t.Fatalf("Draw: %v", err)
		}
		pass.End()
	}

	gl.Reset()
	runImmediate()
	want := append(gl.Calls(), "Flush()")

	gl.Reset()
	enc := d.CreateRecordingEncoder()
	pass, err := enc.BeginRenderPass(clearPass(view))
	if err != nil {
		t.Fatalf("BeginRenderPass: %v", err)
	}
	if err := pass.SetPipeline(pipeline); err != nil {
		t.Fatalf("SetPipeline: %v", err)
	}
	if err := pass.SetVertexBuffer(0, buf, 16); err != nil {
		t.Fatalf("SetVertexBuffer: %v", err)
	}
	if err := pass.Draw(3, 1, 0, 0); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	pass.End()
	cb, err := enc.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	d.Queue().Submit(cb)

	if got := gl.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("replay calls = %v\nwant %v", got, want)
	}
}

func TestRecordingEncoderProtocolErrors(t *testing.T) {
	d, _ := newTestDevice(t)
	view := d.SurfaceTexture().CreateView()

	enc := d.CreateRecordingEncoder()
	pass, err := enc.BeginRenderPass(clearPass(view))
	if err != nil {
		t.Fatalf("BeginRenderPass: %v", err)
	}

	if _, err := enc.BeginRenderPass(clearPass(view)); !errors.Is(err, ErrPassActive) {
		t.Errorf("nested begin err = %v, want ErrPassActive", err)
	}
	if _, err := enc.Finish(); !errors.Is(err, ErrPassActive) {
		t.Errorf("finish with open pass err = %v, want ErrPassActive", err)
	}
	if err := pass.SetVertexBuffer(0, nil, 0); !errors.Is(err, ErrNilBuffer) {
		t.Errorf("SetVertexBuffer(nil) err = %v, want ErrNilBuffer", err)
	}
	if err := pass.Draw(3, 1, 0, 0); !errors.Is(err, ErrNilPipeline) {
		t.Errorf("Draw without pipeline err = %v, want ErrNilPipeline", err)
	}

	pass.End()
	if err := pass.SetScissorRect(0, 0, 1, 1); !errors.Is(err, ErrPassEnded) {
		t.Errorf("record after End err = %v, want ErrPassEnded", err)
	}
	if _, err := enc.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if _, err := enc.Finish(); !errors.Is(err, ErrEncoderFinished) {
		t.Errorf("double finish err = %v, want ErrEncoderFinished", err)
	}
}

func TestSubmitFlushes(t *testing.T) {
	d, gl := newTestDevice(t)

	d.Queue().Submit()
	if gl.Count("Flush") != 1 {
		t.Errorf("Flush calls = %d, want 1", gl.Count("Flush"))
	}
}
