package codegen

// script must stay valid after Minify: statements end in semicolons and
// there are no line comments.
const script = `(function () {
  if (window.punktualToggle) {
    return;
  }
  function closeAll(except) {
    var open = document.querySelectorAll('.punktual-atc.punktual-atc-open');
    for (var i = 0; i < open.length; i++) {
      if (open[i] !== except) {
        open[i].classList.remove('punktual-atc-open');
        var btn = open[i].querySelector('.punktual-atc-button');
        if (btn) {
          btn.setAttribute('aria-expanded', 'false');
        }
      }
    }
  }
  window.punktualToggle = function (button) {
    var root = button.closest('.punktual-atc');
    if (!root) {
      return;
    }
    closeAll(root);
    var isOpen = root.classList.toggle('punktual-atc-open');
    button.setAttribute('aria-expanded', isOpen ? 'true' : 'false');
  };
  document.addEventListener('click', function (event) {
    if (!event.target.closest || !event.target.closest('.punktual-atc')) {
      closeAll(null);
    }
  });
  document.addEventListener('keydown', function (event) {
    if (event.key === 'Escape') {
      closeAll(null);
    }
  });
})();
`

// JS returns the dropdown toggle script. It defines window.punktualToggle,
// which DropdownHTML buttons call, and closes open panels on outside click
// or Escape.
func JS() string {
	return script
}
