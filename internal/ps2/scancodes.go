package ps2

// Keycode is a host-independent key identity. cmd/fxtemu maps SDL2
// scancodes onto this set before calling KeyDown/KeyUp, keeping this
// package free of any windowing-library dependency (spec.md §4.7: "pure
// function from a host keycode space").
type Keycode int

const (
	KeyUnknown Keycode = iota
	KeySpace
	KeyApostrophe
	KeyComma
	KeyMinus
	KeyPeriod
	KeySlash
	KeySemicolon
	KeyEqual
	KeyLeftBracket
	KeyBackslash
	KeyRightBracket
	KeyGraveAccent
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftSuper
	KeyRightSuper
	KeyMenu
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPDecimal
	KeyKPDivide
	KeyKPMultiply
	KeyKPSubtract
	KeyKPAdd
	KeyKPEnter
)

// set2Code is a Set-2 scancode paired with its E0-extended flag.
type set2Code struct {
	extended bool
	code     uint8
}

// keycodeToSet2 is the full host-keycode-to-PS/2-Set-2 table, ported
// from original_source/src/Ps2.cpp's keycode_to_ps2 switch.
var keycodeToSet2 = map[Keycode]set2Code{
	KeySpace:         {false, 0x29},
	KeyApostrophe:    {false, 0x52},
	KeyComma:         {false, 0x41},
	KeyMinus:         {false, 0x4E},
	KeyPeriod:        {false, 0x49},
	KeySlash:         {false, 0x4A},
	KeySemicolon:     {false, 0x4C},
	KeyEqual:         {false, 0x55},
	KeyLeftBracket:   {false, 0x54},
	KeyBackslash:     {false, 0x5D},
	KeyRightBracket:  {false, 0x5B},
	KeyGraveAccent:   {false, 0x0E},
	Key0:             {false, 0x45},
	Key1:             {false, 0x16},
	Key2:             {false, 0x1E},
	Key3:             {false, 0x26},
	Key4:             {false, 0x25},
	Key5:             {false, 0x2E},
	Key6:             {false, 0x36},
	Key7:             {false, 0x3D},
	Key8:             {false, 0x3E},
	Key9:             {false, 0x46},
	KeyA:             {false, 0x1C},
	KeyB:             {false, 0x32},
	KeyC:             {false, 0x21},
	KeyD:             {false, 0x23},
	KeyE:             {false, 0x24},
	KeyF:             {false, 0x2B},
	KeyG:             {false, 0x34},
	KeyH:             {false, 0x33},
	KeyI:             {false, 0x43},
	KeyJ:             {false, 0x3B},
	KeyK:             {false, 0x42},
	KeyL:             {false, 0x4B},
	KeyM:             {false, 0x3A},
	KeyN:             {false, 0x31},
	KeyO:             {false, 0x44},
	KeyP:             {false, 0x4D},
	KeyQ:             {false, 0x15},
	KeyR:             {false, 0x2D},
	KeyS:             {false, 0x1B},
	KeyT:             {false, 0x2C},
	KeyU:             {false, 0x3C},
	KeyV:             {false, 0x2A},
	KeyW:             {false, 0x1D},
	KeyX:             {false, 0x22},
	KeyY:             {false, 0x35},
	KeyZ:             {false, 0x1A},
	KeyEscape:        {false, 0x76},
	KeyEnter:         {false, 0x5A},
	KeyTab:           {false, 0x0D},
	KeyBackspace:     {false, 0x66},
	KeyCapsLock:      {false, 0x58},
	KeyScrollLock:    {false, 0x7E},
	KeyNumLock:       {false, 0x77},
	KeyF1:            {false, 0x05},
	KeyF2:            {false, 0x06},
	KeyF3:            {false, 0x04},
	KeyF4:            {false, 0x0C},
	KeyF5:            {false, 0x03},
	KeyF6:            {false, 0x0B},
	KeyF7:            {false, 0x83},
	KeyF8:            {false, 0x0A},
	KeyF9:            {false, 0x01},
	KeyF10:           {false, 0x09},
	KeyF11:           {false, 0x78},
	KeyF12:           {false, 0x07},
	KeyLeftShift:     {false, 0x12},
	KeyRightShift:    {false, 0x59},
	KeyLeftControl:   {false, 0x14},
	KeyRightControl:  {true, 0x14},
	KeyLeftAlt:       {false, 0x11},
	KeyRightAlt:      {true, 0x11},
	KeyLeftSuper:     {true, 0x1F},
	KeyRightSuper:    {true, 0x27},
	KeyMenu:          {true, 0x2F},
	KeyInsert:        {true, 0x70},
	KeyDelete:        {true, 0x71},
	KeyHome:          {true, 0x6C},
	KeyEnd:           {true, 0x69},
	KeyPageUp:        {true, 0x7D},
	KeyPageDown:      {true, 0x7A},
	KeyRight:         {true, 0x74},
	KeyLeft:          {true, 0x6B},
	KeyDown:          {true, 0x72},
	KeyUp:            {true, 0x75},
	KeyKP0:           {false, 0x70},
	KeyKP1:           {false, 0x69},
	KeyKP2:           {false, 0x72},
	KeyKP3:           {false, 0x7A},
	KeyKP4:           {false, 0x6B},
	KeyKP5:           {false, 0x73},
	KeyKP6:           {false, 0x74},
	KeyKP7:           {false, 0x6C},
	KeyKP8:           {false, 0x75},
	KeyKP9:           {false, 0x7D},
	KeyKPDecimal:     {false, 0x71},
	KeyKPDivide:      {true, 0x4A},
	KeyKPMultiply:    {false, 0x7C},
	KeyKPSubtract:    {false, 0x7B},
	KeyKPAdd:         {false, 0x79},
	KeyKPEnter:       {true, 0x5A},
}

// translate is the §4.7 key translator: a pure, stateless lookup.
func translate(k Keycode) (set2Code, bool) {
	v, ok := keycodeToSet2[k]
	return v, ok
}
