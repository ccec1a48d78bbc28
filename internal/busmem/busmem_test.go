package busmem

import "testing"

func TestByteRoundTrip(t *testing.T) {
	s := New()
	s.SetByte(0x1234, 0x42)

	if got := s.GetByte(0x1234); got != 0x42 {
		t.Errorf("GetByte(0x1234) = %#02x, want 0x42", got)
	}
}

func TestWordRoundTrip(t *testing.T) {
	s := New()
	s.SetWord(0x10, 0xBEEF)

	if got := s.GetByte(0x10); got != 0xEF {
		t.Errorf("low byte = %#02x, want 0xef", got)
	}
	if got := s.GetByte(0x11); got != 0xBE {
		t.Errorf("high byte = %#02x, want 0xbe", got)
	}
	if got := s.GetWord(0x10); got != 0xBEEF {
		t.Errorf("GetWord(0x10) = %#04x, want 0xbeef", got)
	}
}

func TestReadCallbackReplacesBackingByte(t *testing.T) {
	s := New()
	s.SetByte(0x2002, 0x99) // backing byte, should never be seen
	if err := s.SubscribeRead(0x2000, 0x2008, func(addr uint16) uint8 { return 0x55 }); err != nil {
		t.Fatalf("SubscribeRead: %v", err)
	}

	if got := s.GetByte(0x2002); got != 0x55 {
		t.Errorf("GetByte(0x2002) = %#02x, want 0x55 (callback should win)", got)
	}
}

func TestWriteCallbackInterceptsWrite(t *testing.T) {
	s := New()
	var gotAddr uint16
	var gotVal uint8
	err := s.SubscribeWrite(0x4014, 0x4015, func(addr uint16, v uint8) {
		gotAddr, gotVal = addr, v
	})
	if err != nil {
		t.Fatalf("SubscribeWrite: %v", err)
	}

	s.SetByte(0x4014, 0x02)

	if gotAddr != 0x4014 || gotVal != 0x02 {
		t.Errorf("callback saw (%#04x, %#02x), want (0x4014, 0x02)", gotAddr, gotVal)
	}
	// backing byte must be untouched since a write callback is installed
	s.write[0x4014] = nil
	if got := s.GetByte(0x4014); got != 0 {
		t.Errorf("backing byte = %#02x, want 0 (write callback should have suppressed the raw write)", got)
	}
}

func TestDoubleSubscriptionRejected(t *testing.T) {
	s := New()
	if err := s.SubscribeRead(0x2000, 0x2008, func(uint16) uint8 { return 0 }); err != nil {
		t.Fatalf("first SubscribeRead: %v", err)
	}
	if err := s.SubscribeRead(0x2005, 0x2010, func(uint16) uint8 { return 0 }); err != ErrDoubleSubscription {
		t.Errorf("second SubscribeRead overlapping range = %v, want ErrDoubleSubscription", err)
	}
}

func TestCopyFromRawBypassesCallbacks(t *testing.T) {
	s := New()
	if err := s.SubscribeWrite(0x8000, 0x8001, func(uint16, uint8) {
		t.Fatal("write callback should not fire for CopyFromRaw")
	}); err != nil {
		t.Fatalf("SubscribeWrite: %v", err)
	}

	s.CopyFromRaw([]byte{0xA5}, 0x8000, 1)
	if got := s.GetByte(0x8000); got != 0xA5 {
		// reads aren't intercepted here, so this reads the raw byte directly
		t.Errorf("GetByte(0x8000) = %#02x, want 0xa5", got)
	}
}

func TestResetClearsRAMAndCallbacks(t *testing.T) {
	s := New()
	s.SetByte(0x10, 0xFF)
	if err := s.SubscribeRead(0x10, 0x11, func(uint16) uint8 { return 1 }); err != nil {
		t.Fatalf("SubscribeRead: %v", err)
	}

	s.Reset()

	if got := s.GetByte(0x10); got != 0 {
		t.Errorf("GetByte(0x10) after Reset = %#02x, want 0", got)
	}
	// subscribing again after Reset must succeed (callback table was cleared)
	if err := s.SubscribeRead(0x10, 0x11, func(uint16) uint8 { return 1 }); err != nil {
		t.Errorf("SubscribeRead after Reset: %v, want nil", err)
	}
}
