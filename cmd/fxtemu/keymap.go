package main

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/ponzu840w/FxT-65-Emu/internal/ps2"
)

// sdlScancodeToPS2 maps SDL2 scancodes onto the host-independent
// ps2.Keycode space, the way the teacher repo's updateInputFromKeys
// reads sdl.GetKeyboardState() by SCANCODE_* constant.
var sdlScancodeToPS2 = map[sdl.Scancode]ps2.Keycode{
	sdl.SCANCODE_SPACE:        ps2.KeySpace,
	sdl.SCANCODE_APOSTROPHE:   ps2.KeyApostrophe,
	sdl.SCANCODE_COMMA:        ps2.KeyComma,
	sdl.SCANCODE_MINUS:        ps2.KeyMinus,
	sdl.SCANCODE_PERIOD:       ps2.KeyPeriod,
	sdl.SCANCODE_SLASH:        ps2.KeySlash,
	sdl.SCANCODE_SEMICOLON:    ps2.KeySemicolon,
	sdl.SCANCODE_EQUALS:       ps2.KeyEqual,
	sdl.SCANCODE_LEFTBRACKET:  ps2.KeyLeftBracket,
	sdl.SCANCODE_BACKSLASH:    ps2.KeyBackslash,
	sdl.SCANCODE_RIGHTBRACKET: ps2.KeyRightBracket,
	sdl.SCANCODE_GRAVE:        ps2.KeyGraveAccent,
	sdl.SCANCODE_0:            ps2.Key0,
	sdl.SCANCODE_1:            ps2.Key1,
	sdl.SCANCODE_2:            ps2.Key2,
	sdl.SCANCODE_3:            ps2.Key3,
	sdl.SCANCODE_4:            ps2.Key4,
	sdl.SCANCODE_5:            ps2.Key5,
	sdl.SCANCODE_6:            ps2.Key6,
	sdl.SCANCODE_7:            ps2.Key7,
	sdl.SCANCODE_8:            ps2.Key8,
	sdl.SCANCODE_9:            ps2.Key9,
	sdl.SCANCODE_A:            ps2.KeyA,
	sdl.SCANCODE_B:            ps2.KeyB,
	sdl.SCANCODE_C:            ps2.KeyC,
	sdl.SCANCODE_D:            ps2.KeyD,
	sdl.SCANCODE_E:            ps2.KeyE,
	sdl.SCANCODE_F:            ps2.KeyF,
	sdl.SCANCODE_G:            ps2.KeyG,
	sdl.SCANCODE_H:            ps2.KeyH,
	sdl.SCANCODE_I:            ps2.KeyI,
	sdl.SCANCODE_J:            ps2.KeyJ,
	sdl.SCANCODE_K:            ps2.KeyK,
	sdl.SCANCODE_L:            ps2.KeyL,
	sdl.SCANCODE_M:            ps2.KeyM,
	sdl.SCANCODE_N:            ps2.KeyN,
	sdl.SCANCODE_O:            ps2.KeyO,
	sdl.SCANCODE_P:            ps2.KeyP,
	sdl.SCANCODE_Q:            ps2.KeyQ,
	sdl.SCANCODE_R:            ps2.KeyR,
	sdl.SCANCODE_S:            ps2.KeyS,
	sdl.SCANCODE_T:            ps2.KeyT,
	sdl.SCANCODE_U:            ps2.KeyU,
	sdl.SCANCODE_V:            ps2.KeyV,
	sdl.SCANCODE_W:            ps2.KeyW,
	sdl.SCANCODE_X:            ps2.KeyX,
	sdl.SCANCODE_Y:            ps2.KeyY,
	sdl.SCANCODE_Z:            ps2.KeyZ,
	sdl.SCANCODE_ESCAPE:       ps2.KeyEscape,
	sdl.SCANCODE_RETURN:       ps2.KeyEnter,
	sdl.SCANCODE_TAB:          ps2.KeyTab,
	sdl.SCANCODE_BACKSPACE:    ps2.KeyBackspace,
	sdl.SCANCODE_CAPSLOCK:     ps2.KeyCapsLock,
	sdl.SCANCODE_SCROLLLOCK:   ps2.KeyScrollLock,
	sdl.SCANCODE_NUMLOCKCLEAR: ps2.KeyNumLock,
	sdl.SCANCODE_F1:           ps2.KeyF1,
	sdl.SCANCODE_F2:           ps2.KeyF2,
	sdl.SCANCODE_F3:           ps2.KeyF3,
	sdl.SCANCODE_F4:           ps2.KeyF4,
	sdl.SCANCODE_F5:           ps2.KeyF5,
	sdl.SCANCODE_F6:           ps2.KeyF6,
	sdl.SCANCODE_F7:           ps2.KeyF7,
	sdl.SCANCODE_F8:           ps2.KeyF8,
	sdl.SCANCODE_F9:           ps2.KeyF9,
	sdl.SCANCODE_F10:          ps2.KeyF10,
	sdl.SCANCODE_F11:          ps2.KeyF11,
	sdl.SCANCODE_F12:          ps2.KeyF12,
	sdl.SCANCODE_LSHIFT:       ps2.KeyLeftShift,
	sdl.SCANCODE_RSHIFT:       ps2.KeyRightShift,
	sdl.SCANCODE_LCTRL:        ps2.KeyLeftControl,
	sdl.SCANCODE_RCTRL:        ps2.KeyRightControl,
	sdl.SCANCODE_LALT:         ps2.KeyLeftAlt,
	sdl.SCANCODE_RALT:         ps2.KeyRightAlt,
	sdl.SCANCODE_LGUI:         ps2.KeyLeftSuper,
	sdl.SCANCODE_RGUI:         ps2.KeyRightSuper,
	sdl.SCANCODE_MENU:         ps2.KeyMenu,
	sdl.SCANCODE_INSERT:       ps2.KeyInsert,
	sdl.SCANCODE_DELETE:       ps2.KeyDelete,
	sdl.SCANCODE_HOME:         ps2.KeyHome,
	sdl.SCANCODE_END:          ps2.KeyEnd,
	sdl.SCANCODE_PAGEUP:       ps2.KeyPageUp,
	sdl.SCANCODE_PAGEDOWN:     ps2.KeyPageDown,
	sdl.SCANCODE_RIGHT:        ps2.KeyRight,
	sdl.SCANCODE_LEFT:         ps2.KeyLeft,
	sdl.SCANCODE_DOWN:         ps2.KeyDown,
	sdl.SCANCODE_UP:           ps2.KeyUp,
	sdl.SCANCODE_KP_0:         ps2.KeyKP0,
	sdl.SCANCODE_KP_1:         ps2.KeyKP1,
	sdl.SCANCODE_KP_2:         ps2.KeyKP2,
	sdl.SCANCODE_KP_3:         ps2.KeyKP3,
	sdl.SCANCODE_KP_4:         ps2.KeyKP4,
	sdl.SCANCODE_KP_5:         ps2.KeyKP5,
	sdl.SCANCODE_KP_6:         ps2.KeyKP6,
	sdl.SCANCODE_KP_7:         ps2.KeyKP7,
	sdl.SCANCODE_KP_8:         ps2.KeyKP8,
	sdl.SCANCODE_KP_9:         ps2.KeyKP9,
	sdl.SCANCODE_KP_PERIOD:    ps2.KeyKPDecimal,
	sdl.SCANCODE_KP_DIVIDE:    ps2.KeyKPDivide,
	sdl.SCANCODE_KP_MULTIPLY:  ps2.KeyKPMultiply,
	sdl.SCANCODE_KP_MINUS:     ps2.KeyKPSubtract,
	sdl.SCANCODE_KP_PLUS:      ps2.KeyKPAdd,
	sdl.SCANCODE_KP_ENTER:     ps2.KeyKPEnter,
}
